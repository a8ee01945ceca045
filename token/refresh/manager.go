package refresh

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token/idgen"
	"github.com/pkg/errors"
)

// Manager handles refresh token creation, validation, and rotation
type Manager struct {
	repo     Repo
	ids      *idgen.Generator
	lifetime time.Duration
	length   int
	nowFunc  func() time.Time
}

// NewManager creates a new refresh token manager
func NewManager(repo Repo, ids *idgen.Generator, lifetime time.Duration, length int, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		repo:     repo,
		ids:      ids,
		lifetime: lifetime,
		length:   length,
		nowFunc:  now,
	}
}

// Create generates a new refresh token for the client/user pair and stores
// it. A non-empty userID is the caller's responsibility.
func (m *Manager) Create(ctx context.Context, clientID, userID string) (string, error) {
	clientID = strings.TrimSpace(clientID)
	userID = strings.TrimSpace(userID)

	tokenStr, err := m.ids.Generate(m.length)
	if err != nil {
		return "", errors.Wrap(err, "refresh.Manager.Create Generate")
	}

	expiredAt := oauth2.FormatTimestamp(m.nowFunc().Add(m.lifetime))
	if err := m.repo.InsertRefreshToken(ctx, tokenStr, clientID, userID, expiredAt); err != nil {
		return "", errors.Wrap(err, "refresh.Manager.Create InsertRefreshToken")
	}

	return tokenStr, nil
}

// Verify checks that token exists, belongs to clientID and has not expired.
// Business failures are *oauth2.Error values; storage failures are wrapped.
func (m *Manager) Verify(ctx context.Context, clientID, token string) (*StoredRefreshToken, error) {
	clientID = strings.TrimSpace(clientID)
	token = strings.TrimSpace(token)

	if clientID == "" || token == "" {
		return nil, oauth2.ErrClientIDRefreshTokenRequired.Err()
	}

	rt, err := m.repo.GetRefreshToken(ctx, token)
	if err != nil && !errors.Is(err, oauth2.ErrNotFound) {
		return nil, errors.Wrap(err, "refresh.Manager.Verify GetRefreshToken")
	}
	if err != nil || !rt.Complete() {
		return nil, oauth2.ErrInvalidRefreshToken.Err()
	}

	expiredAt, err := oauth2.ParseTimestamp(rt.ExpiredAt)
	if err != nil {
		return nil, oauth2.ErrInvalidRefreshToken.Err()
	}

	if !strings.EqualFold(rt.ClientID, clientID) {
		return nil, oauth2.ErrInvalidForClient.Err()
	}

	if m.nowFunc().After(expiredAt) {
		return nil, oauth2.ErrExpiredRefreshToken.Err()
	}

	return rt, nil
}

// Delete removes a refresh token from storage. Unknown tokens are ignored.
func (m *Manager) Delete(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := m.repo.DeleteRefreshToken(ctx, token); err != nil && !errors.Is(err, oauth2.ErrNotFound) {
		return errors.Wrap(err, "refresh.Manager.Delete DeleteRefreshToken")
	}
	return nil
}

// Rotate retires old and issues a replacement for the same client/user.
// The two writes are independent: if Create fails after the delete, the
// client is left without a valid refresh token.
func (m *Manager) Rotate(ctx context.Context, old *StoredRefreshToken) (string, error) {
	if err := m.Delete(ctx, old.Token); err != nil {
		return "", err
	}
	return m.Create(ctx, old.ClientID, old.UserID)
}

// DeleteExpired removes every refresh token whose expiry has passed.
func (m *Manager) DeleteExpired(ctx context.Context) error {
	return errors.Wrap(m.repo.DeleteExpiredRefreshTokens(ctx), "refresh.Manager.DeleteExpired")
}

// Expired lists refresh tokens whose expiry has passed.
func (m *Manager) Expired(ctx context.Context) ([]*StoredRefreshToken, error) {
	rows, err := m.repo.GetExpiredRefreshTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "refresh.Manager.Expired")
	}
	return rows, nil
}
