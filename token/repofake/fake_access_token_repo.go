package tokenrepofake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token"
)

var _ token.AccessTokenRepo = (*FakeAccessTokenRepo)(nil)

// FakeAccessTokenRepo is an in-memory access token store keyed by the
// lowercased token.
type FakeAccessTokenRepo struct {
	tokens  map[string]*token.AccessToken
	nowFunc func() time.Time
	lock    sync.RWMutex
}

func NewFakeAccessTokenRepo(now func() time.Time) *FakeAccessTokenRepo {
	if now == nil {
		now = time.Now
	}
	return &FakeAccessTokenRepo{
		tokens:  make(map[string]*token.AccessToken),
		nowFunc: now,
	}
}

func key(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func (r *FakeAccessTokenRepo) GetAccessToken(_ context.Context, accessToken string) (*token.AccessToken, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	at, ok := r.tokens[key(accessToken)]
	if !ok {
		return nil, oauth2.ErrNotFound
	}
	c := *at
	return &c, nil
}

func (r *FakeAccessTokenRepo) GetExpiredAccessTokens(_ context.Context) ([]*token.AccessToken, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	now := r.nowFunc()
	expired := make([]*token.AccessToken, 0)
	for _, at := range r.tokens {
		if oauth2.ExpiredBy(at.ExpiredAt, now) {
			c := *at
			expired = append(expired, &c)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].Token < expired[j].Token
	})
	return expired, nil
}

func (r *FakeAccessTokenRepo) InsertAccessToken(_ context.Context, accessToken, clientID, userID, expiredAt string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	k := key(accessToken)
	r.tokens[k] = &token.AccessToken{
		Token:     k,
		ClientID:  clientID,
		UserID:    userID,
		ExpiredAt: expiredAt,
	}
	return nil
}

func (r *FakeAccessTokenRepo) DeleteAccessToken(_ context.Context, accessToken string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.tokens, key(accessToken))
	return nil
}

func (r *FakeAccessTokenRepo) DeleteExpiredAccessTokens(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	now := r.nowFunc()
	for k, at := range r.tokens {
		if oauth2.ExpiredBy(at.ExpiredAt, now) {
			delete(r.tokens, k)
		}
	}
	return nil
}

// Len returns the number of stored tokens.
func (r *FakeAccessTokenRepo) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.tokens)
}
