package oauthmodel_test

import (
	"testing"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/oauthmodel"
	"github.com/stretchr/testify/require"
)

func TestTokenRequestNormalise(t *testing.T) {
	got := oauthmodel.TokenRequest{
		GrantType:    " password\t",
		ClientID:     " web ",
		ClientSecret: " s ",
		UserID:       "\nuser-1 ",
		RefreshToken: " abc ",
	}.Normalise()

	require.Equal(t, oauthmodel.TokenRequest{
		GrantType:    oauth2.PasswordGrant,
		ClientID:     "web",
		ClientSecret: "s",
		UserID:       "user-1",
		RefreshToken: "abc",
	}, got)
}

func TestRevokeRequestNormalise(t *testing.T) {
	got := oauthmodel.RevokeRequest{AccessToken: " a ", RefreshToken: ""}.Normalise()
	require.Equal(t, oauthmodel.RevokeRequest{AccessToken: "a"}, got)
}

func TestParseAuthorizationHeader(t *testing.T) {
	tests := []struct {
		header string
		want   oauthmodel.VerifyRequest
	}{
		{"Bearer abc123", oauthmodel.VerifyRequest{TokenType: "Bearer", AccessToken: "abc123"}},
		{"  Bearer   abc123 ", oauthmodel.VerifyRequest{TokenType: "Bearer", AccessToken: "abc123"}},
		{"Bearer", oauthmodel.VerifyRequest{TokenType: "Bearer"}},
		{"", oauthmodel.VerifyRequest{}},
	}
	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			require.Equal(t, tc.want, oauthmodel.ParseAuthorizationHeader(tc.header))
		})
	}
}
