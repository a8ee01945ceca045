package oauthmodel

import (
	"strings"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
)

// TokenRequest holds parameters for the OAuth2 token request.
// Supports the grant types: client_credentials, password, refresh_token
type TokenRequest struct {
	// GrantType selects the flow.
	// Required: Yes
	// Validated against: the configured grant_types set (exact match)
	GrantType oauth2.GrantType

	// ClientID identifies the OAuth2 client making the request.
	// Required: Yes (for all grant types)
	// Example: "web-app-client"
	// Matching: case-insensitive against the client directory
	ClientID string

	// ClientSecret is the shared secret of the client.
	// Required: Yes (for all grant types)
	// Matching: case-insensitive
	// Security: Never log or expose this value
	ClientSecret string

	// UserID is the identity the tokens are issued for.
	// Required: Yes (only for password grant)
	// Example: "9b2a4c1e-58f1-4f0e-a3e7-1d6f2c3b4a5d"
	UserID string

	// RefreshToken is used to obtain new access tokens without re-authentication.
	// Required: Yes (only for refresh_token grant)
	// Behavior: Rotated when always_issue_new_refresh_token is enabled
	RefreshToken string
}

// Normalise returns a copy with every field trimmed of surrounding whitespace.
func (r TokenRequest) Normalise() TokenRequest {
	return TokenRequest{
		GrantType:    oauth2.GrantType(strings.TrimSpace(string(r.GrantType))),
		ClientID:     strings.TrimSpace(r.ClientID),
		ClientSecret: strings.TrimSpace(r.ClientSecret),
		UserID:       strings.TrimSpace(r.UserID),
		RefreshToken: strings.TrimSpace(r.RefreshToken),
	}
}
