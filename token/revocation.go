package token

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	"github.com/pkg/errors"
)

// Revoke deletes the given tokens. Either may be empty. Deleting a token that
// does not exist is not an error.
func (m *Manager) Revoke(ctx context.Context, accessToken, refreshToken string) error {
	accessToken = strings.TrimSpace(accessToken)
	refreshToken = strings.TrimSpace(refreshToken)

	if accessToken != "" {
		if err := m.accessRepo.DeleteAccessToken(ctx, accessToken); err != nil && !errors.Is(err, oauth2.ErrNotFound) {
			return errors.Wrap(err, "Manager.Revoke DeleteAccessToken")
		}
	}

	if refreshToken != "" {
		if err := m.refresh.Delete(ctx, refreshToken); err != nil {
			return errors.Wrap(err, "Manager.Revoke")
		}
	}

	return nil
}

// DeleteExpiredTokens removes every access and refresh token whose expiry is
// at or before now. It is meant to be called periodically by a scheduler.
func (m *Manager) DeleteExpiredTokens(ctx context.Context) error {
	if err := m.accessRepo.DeleteExpiredAccessTokens(ctx); err != nil {
		return errors.Wrap(err, "Manager.DeleteExpiredTokens DeleteExpiredAccessTokens")
	}
	if err := m.refresh.DeleteExpired(ctx); err != nil {
		return errors.Wrap(err, "Manager.DeleteExpiredTokens")
	}
	return nil
}

// ExpiredTokens holds the rows a sweep would remove.
type ExpiredTokens struct {
	AccessTokens  []*AccessToken                `json:"access_tokens"`
	RefreshTokens []*refresh.StoredRefreshToken `json:"refresh_tokens"`
}

// ExpiredTokens lists expired rows in both stores without deleting them.
func (m *Manager) ExpiredTokens(ctx context.Context) (ExpiredTokens, error) {
	access, err := m.accessRepo.GetExpiredAccessTokens(ctx)
	if err != nil {
		return ExpiredTokens{}, errors.Wrap(err, "Manager.ExpiredTokens GetExpiredAccessTokens")
	}
	refreshTokens, err := m.refresh.Expired(ctx)
	if err != nil {
		return ExpiredTokens{}, errors.Wrap(err, "Manager.ExpiredTokens")
	}
	return ExpiredTokens{AccessTokens: access, RefreshTokens: refreshTokens}, nil
}
