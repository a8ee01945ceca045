package token

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/pkg/errors"
)

// VerifyAccessToken checks a presented access token. The checks run in a
// fixed order and the first failure wins: emptiness, token type, existence,
// expiry.
func (m *Manager) VerifyAccessToken(ctx context.Context, tokenType, accessToken string) (*AccessToken, error) {
	tokenType = strings.TrimSpace(tokenType)
	accessToken = strings.TrimSpace(accessToken)

	if tokenType == "" || accessToken == "" {
		return nil, oauth2.ErrTokenTypeAccessTokenRequired.Err()
	}

	if oauth2.TokenType(tokenType) != m.config.TokenType() {
		return nil, oauth2.ErrInvalidTokenType.Err()
	}

	at, err := m.accessRepo.GetAccessToken(ctx, accessToken)
	if err != nil && !errors.Is(err, oauth2.ErrNotFound) {
		return nil, errors.Wrap(err, "Manager.VerifyAccessToken GetAccessToken")
	}
	if err != nil || !at.Complete() {
		return nil, oauth2.ErrInvalidAccessToken.Err()
	}

	expiredAt, err := oauth2.ParseTimestamp(at.ExpiredAt)
	if err != nil {
		return nil, oauth2.ErrInvalidAccessToken.Err()
	}

	if m.nowFunc().After(expiredAt) {
		return nil, oauth2.ErrExpiredAccessToken.Err()
	}

	return at, nil
}
