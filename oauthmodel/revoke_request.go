package oauthmodel

import "strings"

// RevokeRequest names the tokens to delete. Both fields are optional and
// independent of each other.
type RevokeRequest struct {
	AccessToken  string
	RefreshToken string
}

// Normalise returns a copy with both tokens trimmed.
func (r RevokeRequest) Normalise() RevokeRequest {
	return RevokeRequest{
		AccessToken:  strings.TrimSpace(r.AccessToken),
		RefreshToken: strings.TrimSpace(r.RefreshToken),
	}
}

// VerifyRequest is an access token presented for verification together with
// its type, e.g. from an "Authorization: Bearer <token>" header.
type VerifyRequest struct {
	TokenType   string
	AccessToken string
}

// ParseAuthorizationHeader splits "<type> <token>" into a VerifyRequest.
// A header without a separator yields an empty AccessToken.
func ParseAuthorizationHeader(header string) VerifyRequest {
	tokenType, accessToken, _ := strings.Cut(strings.TrimSpace(header), " ")
	return VerifyRequest{
		TokenType:   strings.TrimSpace(tokenType),
		AccessToken: strings.TrimSpace(accessToken),
	}
}
