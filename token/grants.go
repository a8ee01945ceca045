package token

import (
	"context"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/oauthmodel"
)

// Token runs the grant flow selected by req.GrantType. Client credentials are
// always checked first and the directory's canonical client id is used from
// then on.
//
// The password and refresh_token flows make several independent store writes.
// A failure part way through is returned as-is and earlier writes are kept.
func (m *Manager) Token(ctx context.Context, req oauthmodel.TokenRequest) (*oauth2.TokenResponse, error) {
	req = req.Normalise()

	if !m.config.AllowsGrant(req.GrantType) {
		return nil, oauth2.ErrInvalidGrantType.Errf("grant_type must be one of " + m.config.grantTypesString())
	}

	client, err := m.verifyClientCredentials(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		return nil, err
	}

	switch req.GrantType {
	case oauth2.ClientCredentialsGrant:
		return m.clientCredentialsGrant(ctx, client.ID)
	case oauth2.PasswordGrant:
		return m.passwordGrant(ctx, client.ID, req.UserID)
	case oauth2.RefreshTokenGrant:
		return m.refreshTokenGrant(ctx, client.ID, req.RefreshToken)
	}

	// Unreachable: NewConfig only admits supported grant types.
	return nil, oauth2.ErrInvalidGrantType.Errf("grant_type must be one of " + m.config.grantTypesString())
}

func (m *Manager) clientCredentialsGrant(ctx context.Context, clientID string) (*oauth2.TokenResponse, error) {
	resp, err := m.createAccessToken(ctx, clientID, "")
	if err != nil {
		return nil, err
	}
	m.logger.Debug().Str("client_id", clientID).Str("grant_type", string(oauth2.ClientCredentialsGrant)).Msg("access token issued")
	return resp, nil
}

func (m *Manager) passwordGrant(ctx context.Context, clientID, userID string) (*oauth2.TokenResponse, error) {
	if userID == "" {
		return nil, oauth2.ErrUserIDRequired.Err()
	}

	refreshToken, err := m.refresh.Create(ctx, clientID, userID)
	if err != nil {
		return nil, err
	}

	resp, err := m.createAccessToken(ctx, clientID, userID)
	if err != nil {
		m.logger.Warn().Err(err).Str("client_id", clientID).Msg("password grant failed after refresh token was stored")
		return nil, err
	}
	resp.RefreshToken = refreshToken

	m.logger.Debug().Str("client_id", clientID).Str("grant_type", string(oauth2.PasswordGrant)).Msg("access and refresh tokens issued")
	return resp, nil
}

func (m *Manager) refreshTokenGrant(ctx context.Context, clientID, refreshToken string) (*oauth2.TokenResponse, error) {
	rt, err := m.refresh.Verify(ctx, clientID, refreshToken)
	if err != nil {
		return nil, err
	}

	resp, err := m.createAccessToken(ctx, rt.ClientID, rt.UserID)
	if err != nil {
		return nil, err
	}
	resp.RefreshToken = refreshToken

	if m.config.AlwaysIssueNewRefreshToken() {
		newRefreshToken, err := m.refresh.Rotate(ctx, rt)
		if err != nil {
			m.logger.Warn().Err(err).Str("client_id", rt.ClientID).Msg("refresh token rotation failed after access token was stored")
			return nil, err
		}
		resp.RefreshToken = newRefreshToken
	}

	m.logger.Debug().Str("client_id", rt.ClientID).Str("grant_type", string(oauth2.RefreshTokenGrant)).Bool("rotated", m.config.AlwaysIssueNewRefreshToken()).Msg("access token refreshed")
	return resp, nil
}
