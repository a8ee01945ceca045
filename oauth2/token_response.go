package oauth2

// TokenResponse represents the response from an OAuth2 token request.
// Returned from Manager.Token for all supported grant types.
type TokenResponse struct {
	// AccessToken is the opaque hexadecimal bearer token.
	// Example: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3600 (for one hour)
	// Note: Always equal to the configured access_token_lifetime
	ExpiresIn int `json:"expires_in"`

	// TokenType indicates how to present the access token.
	// Example: "Bearer"
	TokenType TokenType `json:"token_type"`

	// RefreshToken is an opaque token used to obtain new access tokens.
	// Only present: password and refresh_token grants
	// Behavior: Rotated on use when always_issue_new_refresh_token is enabled
	RefreshToken string `json:"refresh_token,omitempty"`
}
