// Package redis keeps access and refresh tokens in Redis. Each token is a JSON
// string at <prefix><kind>:token:<token>; a sorted set at <prefix><kind>:expiry
// scored by unix expiry drives the sweep queries. Keys carry no Redis TTL so an
// expired token can still be told apart from an unknown one until it is swept.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	"github.com/redis/go-redis/v9"
)

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// Config holds connection settings for NewStorage.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Storage is a Redis backed pair of token stores.
type Storage struct {
	client    redis.UniversalClient
	keyPrefix string
	nowFunc   func() time.Time
}

type Option func(*Storage)

// WithNowFunc sets the clock used by the expiry queries.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Storage) {
		s.nowFunc = now
	}
}

// NewStorage connects to Redis and checks the connection.
func NewStorage(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return NewStorageWithClient(client, cfg.KeyPrefix, opts...), nil
}

// NewStorageWithClient wraps an existing client, e.g. one pointed at miniredis.
func NewStorageWithClient(client redis.UniversalClient, keyPrefix string, opts ...Option) *Storage {
	s := &Storage{client: client, keyPrefix: keyPrefix, nowFunc: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Storage) AccessTokens() *AccessTokenStore {
	return &AccessTokenStore{set: s.tokenSet(kindAccess)}
}

func (s *Storage) RefreshTokens() *RefreshTokenStore {
	return &RefreshTokenStore{set: s.tokenSet(kindRefresh)}
}

func (s *Storage) tokenSet(kind string) tokenSet {
	return tokenSet{client: s.client, prefix: s.keyPrefix + kind + ":", nowFunc: s.nowFunc}
}

type record struct {
	Token     string `json:"token"`
	ClientID  string `json:"client_id"`
	UserID    string `json:"user_id"`
	ExpiredAt string `json:"expired_at"`
}

// tokenSet stores one token kind under prefix.
type tokenSet struct {
	client  redis.UniversalClient
	prefix  string
	nowFunc func() time.Time
}

func normalise(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func (t tokenSet) key(tokenStr string) string {
	return t.prefix + "token:" + tokenStr
}

func (t tokenSet) expiryKey() string {
	return t.prefix + "expiry"
}

func (t tokenSet) get(ctx context.Context, tokenStr string) (*record, error) {
	data, err := t.client.Get(ctx, t.key(normalise(tokenStr))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, oauth2.ErrNotFound
		}
		return nil, fmt.Errorf("reading token: %w", err)
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	return &r, nil
}

func (t tokenSet) insert(ctx context.Context, tokenStr, clientID, userID, expiredAt string) error {
	expiry, err := oauth2.ParseTimestamp(expiredAt)
	if err != nil {
		return fmt.Errorf("parsing expired_at: %w", err)
	}
	k := normalise(tokenStr)
	data, err := json.Marshal(record{Token: k, ClientID: clientID, UserID: userID, ExpiredAt: expiredAt})
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	_, err = t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, t.key(k), data, 0)
		pipe.ZAdd(ctx, t.expiryKey(), redis.Z{Score: float64(expiry.Unix()), Member: k})
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	return nil
}

func (t tokenSet) delete(ctx context.Context, tokenStr string) error {
	k := normalise(tokenStr)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, t.key(k))
		pipe.ZRem(ctx, t.expiryKey(), k)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

// expiredMembers lists tokens whose expiry is at or before now.
func (t tokenSet) expiredMembers(ctx context.Context) ([]string, error) {
	members, err := t.client.ZRangeByScore(ctx, t.expiryKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(t.nowFunc().Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("reading expiry index: %w", err)
	}
	return members, nil
}

func (t tokenSet) expired(ctx context.Context) ([]record, error) {
	members, err := t.expiredMembers(ctx)
	if err != nil || len(members) == 0 {
		return []record{}, err
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, t.key(m))
	}
	values, err := t.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading expired tokens: %w", err)
	}

	out := make([]record, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Index entry without a value; the next sweep removes it.
			continue
		}
		var r record
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			return nil, fmt.Errorf("decoding token: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (t tokenSet) deleteExpired(ctx context.Context) error {
	members, err := t.expiredMembers(ctx)
	if err != nil || len(members) == 0 {
		return err
	}

	keys := make([]string, 0, len(members))
	index := make([]any, 0, len(members))
	for _, m := range members {
		keys = append(keys, t.key(m))
		index = append(index, m)
	}
	_, err = t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, t.expiryKey(), index...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting expired tokens: %w", err)
	}
	return nil
}

// AccessTokenStore implements token.AccessTokenRepo.
type AccessTokenStore struct {
	set tokenSet
}

var _ token.AccessTokenRepo = (*AccessTokenStore)(nil)

func (s *AccessTokenStore) GetAccessToken(ctx context.Context, accessToken string) (*token.AccessToken, error) {
	r, err := s.set.get(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return &token.AccessToken{Token: r.Token, ClientID: r.ClientID, UserID: r.UserID, ExpiredAt: r.ExpiredAt}, nil
}

func (s *AccessTokenStore) GetExpiredAccessTokens(ctx context.Context) ([]*token.AccessToken, error) {
	rows, err := s.set.expired(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*token.AccessToken, 0, len(rows))
	for _, r := range rows {
		out = append(out, &token.AccessToken{Token: r.Token, ClientID: r.ClientID, UserID: r.UserID, ExpiredAt: r.ExpiredAt})
	}
	return out, nil
}

func (s *AccessTokenStore) InsertAccessToken(ctx context.Context, accessToken, clientID, userID, expiredAt string) error {
	return s.set.insert(ctx, accessToken, clientID, userID, expiredAt)
}

func (s *AccessTokenStore) DeleteAccessToken(ctx context.Context, accessToken string) error {
	return s.set.delete(ctx, accessToken)
}

func (s *AccessTokenStore) DeleteExpiredAccessTokens(ctx context.Context) error {
	return s.set.deleteExpired(ctx)
}

// RefreshTokenStore implements refresh.Repo.
type RefreshTokenStore struct {
	set tokenSet
}

var _ refresh.Repo = (*RefreshTokenStore)(nil)

func (s *RefreshTokenStore) GetRefreshToken(ctx context.Context, refreshToken string) (*refresh.StoredRefreshToken, error) {
	r, err := s.set.get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return &refresh.StoredRefreshToken{Token: r.Token, ClientID: r.ClientID, UserID: r.UserID, ExpiredAt: r.ExpiredAt}, nil
}

func (s *RefreshTokenStore) GetExpiredRefreshTokens(ctx context.Context) ([]*refresh.StoredRefreshToken, error) {
	rows, err := s.set.expired(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*refresh.StoredRefreshToken, 0, len(rows))
	for _, r := range rows {
		out = append(out, &refresh.StoredRefreshToken{Token: r.Token, ClientID: r.ClientID, UserID: r.UserID, ExpiredAt: r.ExpiredAt})
	}
	return out, nil
}

func (s *RefreshTokenStore) InsertRefreshToken(ctx context.Context, refreshToken, clientID, userID, expiredAt string) error {
	return s.set.insert(ctx, refreshToken, clientID, userID, expiredAt)
}

func (s *RefreshTokenStore) DeleteRefreshToken(ctx context.Context, refreshToken string) error {
	return s.set.delete(ctx, refreshToken)
}

func (s *RefreshTokenStore) DeleteExpiredRefreshTokens(ctx context.Context) error {
	return s.set.deleteExpired(ctx)
}
