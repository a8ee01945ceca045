package oauth2

import "slices"

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
// Determines what credentials are required to obtain tokens.
type GrantType string

const (
	// ClientCredentialsGrant allows machine-to-machine authentication.
	// Token request includes: client_id, client_secret
	// Returns: access_token only (no refresh_token, no user binding)
	ClientCredentialsGrant GrantType = "client_credentials"

	// PasswordGrant issues tokens for a user the caller has already authenticated.
	// Token request includes: client_id, client_secret, user_id
	// Returns: access_token and refresh_token bound to the client and user
	PasswordGrant GrantType = "password"

	// RefreshTokenGrant exchanges a refresh token for a new access token.
	// Token request includes: client_id, client_secret, refresh_token
	// Returns: new access_token and the (possibly rotated) refresh_token
	RefreshTokenGrant GrantType = "refresh_token"
)

// SupportedGrantTypes lists every grant type the engine can be configured with.
var SupportedGrantTypes = []GrantType{ClientCredentialsGrant, PasswordGrant, RefreshTokenGrant}

// IsSupported reports whether g is one of SupportedGrantTypes. The match is exact.
func (g GrantType) IsSupported() bool {
	return slices.Contains(SupportedGrantTypes, g)
}

// TokenType is the presentation scheme of an access token.
type TokenType string

const (
	// BearerTokenType means possession of the token alone proves authorization.
	BearerTokenType TokenType = "Bearer"
)

// SupportedTokenTypes lists the token types accepted in configuration.
var SupportedTokenTypes = []TokenType{BearerTokenType}

// IsSupported reports whether t is one of SupportedTokenTypes (case-sensitive).
func (t TokenType) IsSupported() bool {
	return slices.Contains(SupportedTokenTypes, t)
}
