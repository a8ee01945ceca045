package refreshrepofake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
)

var _ refresh.Repo = (*FakeRefreshTokenRepo)(nil)

type FakeRefreshTokenRepo struct {
	tokens  map[string]*refresh.StoredRefreshToken
	nowFunc func() time.Time
	lock    sync.RWMutex
}

func NewFakeRefreshTokenRepo(now func() time.Time) *FakeRefreshTokenRepo {
	if now == nil {
		now = time.Now
	}
	return &FakeRefreshTokenRepo{
		tokens:  make(map[string]*refresh.StoredRefreshToken),
		nowFunc: now,
	}
}

func (tr *FakeRefreshTokenRepo) GetRefreshToken(_ context.Context, token string) (*refresh.StoredRefreshToken, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	rt, ok := tr.tokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return nil, oauth2.ErrNotFound
	}
	c := *rt
	return &c, nil
}

func (tr *FakeRefreshTokenRepo) GetExpiredRefreshTokens(_ context.Context) ([]*refresh.StoredRefreshToken, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	now := tr.nowFunc()
	tokens := make([]*refresh.StoredRefreshToken, 0)
	for _, v := range tr.tokens {
		if oauth2.ExpiredBy(v.ExpiredAt, now) {
			c := *v
			tokens = append(tokens, &c)
		}
	}

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Token < tokens[j].Token
	})
	return tokens, nil
}

func (tr *FakeRefreshTokenRepo) InsertRefreshToken(_ context.Context, token, clientID, userID, expiredAt string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	k := strings.ToLower(strings.TrimSpace(token))
	tr.tokens[k] = &refresh.StoredRefreshToken{
		Token:     k,
		ClientID:  clientID,
		UserID:    userID,
		ExpiredAt: expiredAt,
	}
	return nil
}

func (tr *FakeRefreshTokenRepo) DeleteRefreshToken(_ context.Context, token string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	delete(tr.tokens, strings.ToLower(strings.TrimSpace(token)))
	return nil
}

func (tr *FakeRefreshTokenRepo) DeleteExpiredRefreshTokens(_ context.Context) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	now := tr.nowFunc()
	for k, v := range tr.tokens {
		if oauth2.ExpiredBy(v.ExpiredAt, now) {
			delete(tr.tokens, k)
		}
	}
	return nil
}

func (tr *FakeRefreshTokenRepo) Len() int {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return len(tr.tokens)
}
