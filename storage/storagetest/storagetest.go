// Package storagetest holds behavioural checks shared by every token store
// implementation.
package storagetest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	"github.com/stretchr/testify/require"
)

// Clock is a settable time source handed to the store under test.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Stores builds fresh, empty stores that read time from clock.
type Stores func(t *testing.T, clock *Clock) (token.AccessTokenRepo, refresh.Repo)

// Run exercises both token stores returned by newStores.
func Run(t *testing.T, newStores Stores) {
	t.Run("AccessTokens", func(t *testing.T) {
		clock := NewClock()
		access, _ := newStores(t, clock)
		runTokenChecks(t, clock, accessAdapter{access})
	})
	t.Run("RefreshTokens", func(t *testing.T) {
		clock := NewClock()
		_, rt := newStores(t, clock)
		runTokenChecks(t, clock, refreshAdapter{rt})
	})
}

type row struct {
	Token, ClientID, UserID, ExpiredAt string
}

// tokenStore lets one set of checks drive either store.
type tokenStore interface {
	get(ctx context.Context, tok string) (*row, error)
	expired(ctx context.Context) ([]row, error)
	insert(ctx context.Context, tok, clientID, userID, expiredAt string) error
	delete(ctx context.Context, tok string) error
	deleteExpired(ctx context.Context) error
}

func runTokenChecks(t *testing.T, clock *Clock, s tokenStore) {
	ctx := context.Background()
	now := clock.Now()
	future := oauth2.FormatTimestamp(now.Add(time.Hour))
	past := oauth2.FormatTimestamp(now.Add(-time.Hour))
	exact := oauth2.FormatTimestamp(now)

	t.Run("get is case insensitive", func(t *testing.T) {
		require.NoError(t, s.insert(ctx, "AB12cd", "client-1", "user-1", future))

		got, err := s.get(ctx, "ab12CD")
		require.NoError(t, err)
		require.Equal(t, "ab12cd", got.Token)
		require.Equal(t, "client-1", got.ClientID)
		require.Equal(t, "user-1", got.UserID)
		require.Equal(t, future, got.ExpiredAt)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		got, err := s.get(ctx, "ffff")
		if err == nil {
			require.Nil(t, got)
			return
		}
		require.ErrorIs(t, err, oauth2.ErrNotFound)
	})

	t.Run("empty user id round trips", func(t *testing.T) {
		require.NoError(t, s.insert(ctx, "cc33", "client-1", "", future))
		got, err := s.get(ctx, "cc33")
		require.NoError(t, err)
		require.Empty(t, got.UserID)
	})

	t.Run("delete is case insensitive and idempotent", func(t *testing.T) {
		require.NoError(t, s.insert(ctx, "dd44", "client-1", "user-1", future))
		require.NoError(t, s.delete(ctx, "DD44"))

		_, err := s.get(ctx, "dd44")
		require.ErrorIs(t, err, oauth2.ErrNotFound)

		require.NoError(t, s.delete(ctx, "dd44"))
		require.NoError(t, s.delete(ctx, "never-stored"))
	})

	t.Run("sweep removes rows at or before now", func(t *testing.T) {
		require.NoError(t, s.insert(ctx, "ee55", "client-1", "user-1", past))
		require.NoError(t, s.insert(ctx, "ee66", "client-1", "user-1", exact))

		expired, err := s.expired(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"ee55", "ee66"}, tokens(expired))

		require.NoError(t, s.deleteExpired(ctx))

		expired, err = s.expired(ctx)
		require.NoError(t, err)
		require.Empty(t, expired)

		_, err = s.get(ctx, "ab12cd")
		require.NoError(t, err)
	})

	t.Run("sweep follows the clock", func(t *testing.T) {
		clock.Advance(2 * time.Hour)
		require.NoError(t, s.deleteExpired(ctx))

		_, err := s.get(ctx, "ab12cd")
		require.ErrorIs(t, err, oauth2.ErrNotFound)
	})
}

func tokens(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, strings.ToLower(r.Token))
	}
	return out
}

type accessAdapter struct{ repo token.AccessTokenRepo }

func (a accessAdapter) get(ctx context.Context, tok string) (*row, error) {
	at, err := a.repo.GetAccessToken(ctx, tok)
	if err != nil {
		return nil, err
	}
	if at == nil {
		return nil, oauth2.ErrNotFound
	}
	return &row{at.Token, at.ClientID, at.UserID, at.ExpiredAt}, nil
}

func (a accessAdapter) expired(ctx context.Context) ([]row, error) {
	list, err := a.repo.GetExpiredAccessTokens(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]row, 0, len(list))
	for _, at := range list {
		out = append(out, row{at.Token, at.ClientID, at.UserID, at.ExpiredAt})
	}
	return out, nil
}

func (a accessAdapter) insert(ctx context.Context, tok, clientID, userID, expiredAt string) error {
	return a.repo.InsertAccessToken(ctx, tok, clientID, userID, expiredAt)
}

func (a accessAdapter) delete(ctx context.Context, tok string) error {
	return a.repo.DeleteAccessToken(ctx, tok)
}

func (a accessAdapter) deleteExpired(ctx context.Context) error {
	return a.repo.DeleteExpiredAccessTokens(ctx)
}

type refreshAdapter struct{ repo refresh.Repo }

func (a refreshAdapter) get(ctx context.Context, tok string) (*row, error) {
	rt, err := a.repo.GetRefreshToken(ctx, tok)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, oauth2.ErrNotFound
	}
	return &row{rt.Token, rt.ClientID, rt.UserID, rt.ExpiredAt}, nil
}

func (a refreshAdapter) expired(ctx context.Context) ([]row, error) {
	list, err := a.repo.GetExpiredRefreshTokens(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]row, 0, len(list))
	for _, rt := range list {
		out = append(out, row{rt.Token, rt.ClientID, rt.UserID, rt.ExpiredAt})
	}
	return out, nil
}

func (a refreshAdapter) insert(ctx context.Context, tok, clientID, userID, expiredAt string) error {
	return a.repo.InsertRefreshToken(ctx, tok, clientID, userID, expiredAt)
}

func (a refreshAdapter) delete(ctx context.Context, tok string) error {
	return a.repo.DeleteRefreshToken(ctx, tok)
}

func (a refreshAdapter) deleteExpired(ctx context.Context) error {
	return a.repo.DeleteExpiredRefreshTokens(ctx)
}
