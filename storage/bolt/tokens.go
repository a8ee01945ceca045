package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

// record is the stored form of both token kinds.
type record struct {
	Token     string `json:"token"`
	ClientID  string `json:"client_id"`
	UserID    string `json:"user_id"`
	ExpiredAt string `json:"expired_at"`
}

type tokenBucket struct {
	db      *bolt.DB
	name    []byte
	nowFunc func() time.Time
}

func (b tokenBucket) get(tokenStr string) (*record, error) {
	var r *record
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(b.name).Get(key(tokenStr))
		if v == nil {
			return nil
		}
		r = &record{}
		return json.Unmarshal(v, r)
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.name, err)
	}
	if r == nil {
		return nil, oauth2.ErrNotFound
	}
	return r, nil
}

// decodeExpired reports whether the stored value v is due for sweeping. A
// value that cannot be decoded can never verify, so it is reported as an
// expired row carrying only its key.
func (b tokenBucket) decodeExpired(k, v []byte, now time.Time) (record, bool) {
	var r record
	if err := json.Unmarshal(v, &r); err != nil {
		log.Warn().Err(err).Str("bucket", string(b.name)).Msg("undecodable token row treated as expired")
		return record{Token: string(k)}, true
	}
	return r, oauth2.ExpiredBy(r.ExpiredAt, now)
}

func (b tokenBucket) expired() ([]record, error) {
	now := b.nowFunc()
	out := make([]record, 0)
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(b.name).ForEach(func(k, v []byte) error {
			if r, ok := b.decodeExpired(k, v, now); ok {
				out = append(out, r)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", b.name, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out, nil
}

func (b tokenBucket) insert(tokenStr, clientID, userID, expiredAt string) error {
	k := key(tokenStr)
	data, err := json.Marshal(record{Token: string(k), ClientID: clientID, UserID: userID, ExpiredAt: expiredAt})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", b.name, err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.name).Put(k, data)
	})
}

func (b tokenBucket) delete(tokenStr string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.name).Delete(key(tokenStr))
	})
}

func (b tokenBucket) deleteExpired() error {
	now := b.nowFunc()
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.name)
		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			if _, ok := b.decodeExpired(k, v, now); ok {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		// Keys are collected first; bbolt does not allow deletes during ForEach.
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r record) accessToken() *token.AccessToken {
	return &token.AccessToken{Token: r.Token, ClientID: r.ClientID, UserID: r.UserID, ExpiredAt: r.ExpiredAt}
}

func (r record) refreshToken() *refresh.StoredRefreshToken {
	return &refresh.StoredRefreshToken{Token: r.Token, ClientID: r.ClientID, UserID: r.UserID, ExpiredAt: r.ExpiredAt}
}

// AccessTokenStore implements token.AccessTokenRepo.
type AccessTokenStore struct {
	bucket tokenBucket
}

var _ token.AccessTokenRepo = (*AccessTokenStore)(nil)

func (s *AccessTokenStore) GetAccessToken(_ context.Context, accessToken string) (*token.AccessToken, error) {
	r, err := s.bucket.get(accessToken)
	if err != nil {
		return nil, err
	}
	return r.accessToken(), nil
}

func (s *AccessTokenStore) GetExpiredAccessTokens(_ context.Context) ([]*token.AccessToken, error) {
	rows, err := s.bucket.expired()
	if err != nil {
		return nil, err
	}
	out := make([]*token.AccessToken, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.accessToken())
	}
	return out, nil
}

func (s *AccessTokenStore) InsertAccessToken(_ context.Context, accessToken, clientID, userID, expiredAt string) error {
	return s.bucket.insert(accessToken, clientID, userID, expiredAt)
}

func (s *AccessTokenStore) DeleteAccessToken(_ context.Context, accessToken string) error {
	return s.bucket.delete(accessToken)
}

func (s *AccessTokenStore) DeleteExpiredAccessTokens(_ context.Context) error {
	return s.bucket.deleteExpired()
}

// RefreshTokenStore implements refresh.Repo.
type RefreshTokenStore struct {
	bucket tokenBucket
}

var _ refresh.Repo = (*RefreshTokenStore)(nil)

func (s *RefreshTokenStore) GetRefreshToken(_ context.Context, refreshToken string) (*refresh.StoredRefreshToken, error) {
	r, err := s.bucket.get(refreshToken)
	if err != nil {
		return nil, err
	}
	return r.refreshToken(), nil
}

func (s *RefreshTokenStore) GetExpiredRefreshTokens(_ context.Context) ([]*refresh.StoredRefreshToken, error) {
	rows, err := s.bucket.expired()
	if err != nil {
		return nil, err
	}
	out := make([]*refresh.StoredRefreshToken, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.refreshToken())
	}
	return out, nil
}

func (s *RefreshTokenStore) InsertRefreshToken(_ context.Context, refreshToken, clientID, userID, expiredAt string) error {
	return s.bucket.insert(refreshToken, clientID, userID, expiredAt)
}

func (s *RefreshTokenStore) DeleteRefreshToken(_ context.Context, refreshToken string) error {
	return s.bucket.delete(refreshToken)
}

func (s *RefreshTokenStore) DeleteExpiredRefreshTokens(_ context.Context) error {
	return s.bucket.deleteExpired()
}
