package token_test

import (
	"testing"

	"github.com/jrsteele09/go-oauth-tokens/internal/utils"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/stretchr/testify/require"
)

func validRawConfig() map[string]any {
	return map[string]any{
		token.KeyAccessTokenLifetime:        3600,
		token.KeyAccessTokenLength:          64,
		token.KeyRefreshTokenLifetime:       1209600,
		token.KeyRefreshTokenLength:         64,
		token.KeyTokenType:                  "Bearer",
		token.KeyAlwaysIssueNewRefreshToken: true,
		token.KeyGrantTypes:                 []any{"client_credentials", "password", "refresh_token"},
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := token.NewConfig(token.DefaultConfigSettings())
	require.NoError(t, err)

	require.Equal(t, 3600, cfg.AccessTokenLifetimeSeconds())
	require.Equal(t, 64, cfg.AccessTokenLength())
	require.Equal(t, 64, cfg.RefreshTokenLength())
	require.Equal(t, oauth2.BearerTokenType, cfg.TokenType())
	require.True(t, cfg.AlwaysIssueNewRefreshToken())
	require.ElementsMatch(t, oauth2.SupportedGrantTypes, cfg.GrantTypes())
}

func TestNewConfig_GrantTypesAreCopied(t *testing.T) {
	cfg, err := token.NewConfig(token.DefaultConfigSettings())
	require.NoError(t, err)

	grants := cfg.GrantTypes()
	grants[0] = "tampered"
	require.True(t, cfg.AllowsGrant(oauth2.ClientCredentialsGrant))
	require.False(t, cfg.AllowsGrant("tampered"))
}

func TestNewConfig_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *token.ConfigSettings)
		field  string
	}{
		{"access lifetime", func(s *token.ConfigSettings) { s.AccessTokenLifetime = nil }, token.KeyAccessTokenLifetime},
		{"access length", func(s *token.ConfigSettings) { s.AccessTokenLength = nil }, token.KeyAccessTokenLength},
		{"refresh lifetime", func(s *token.ConfigSettings) { s.RefreshTokenLifetime = nil }, token.KeyRefreshTokenLifetime},
		{"refresh length", func(s *token.ConfigSettings) { s.RefreshTokenLength = nil }, token.KeyRefreshTokenLength},
		{"token type", func(s *token.ConfigSettings) { s.TokenType = nil }, token.KeyTokenType},
		{"rotation flag", func(s *token.ConfigSettings) { s.AlwaysIssueNewRefreshToken = nil }, token.KeyAlwaysIssueNewRefreshToken},
		{"grant types", func(s *token.ConfigSettings) { s.GrantTypes = nil }, token.KeyGrantTypes},
		{"short lifetime", func(s *token.ConfigSettings) { s.RefreshTokenLifetime = utils.Ptr(59) }, token.KeyRefreshTokenLifetime},
		{"overflowing access lifetime", func(s *token.ConfigSettings) { s.AccessTokenLifetime = utils.Ptr(10_000_000_000) }, token.KeyAccessTokenLifetime},
		{"overflowing refresh lifetime", func(s *token.ConfigSettings) { s.RefreshTokenLifetime = utils.Ptr(9_223_372_037) }, token.KeyRefreshTokenLifetime},
		{"longest lifetime", func(s *token.ConfigSettings) { s.RefreshTokenLifetime = utils.Ptr(9_223_372_036) }, ""},
		{"padded token type", func(s *token.ConfigSettings) { s.TokenType = utils.Ptr("  Bearer ") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := token.DefaultConfigSettings()
			tt.mutate(&s)
			_, err := token.NewConfig(s)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var cfgErr *token.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tt.field, cfgErr.Field)
			require.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParseConfig_Valid(t *testing.T) {
	raw := validRawConfig()
	raw[token.KeyAccessTokenLifetime] = float64(120)
	raw[token.KeyAccessTokenLength] = int64(32)
	raw[token.KeyRefreshTokenLength] = 128
	raw[token.KeyAlwaysIssueNewRefreshToken] = false
	raw[token.KeyGrantTypes] = []string{"password", "password"}

	cfg, err := token.ParseConfig(raw)
	require.NoError(t, err)
	require.Equal(t, 120, cfg.AccessTokenLifetimeSeconds())
	require.Equal(t, 32, cfg.AccessTokenLength())
	require.Equal(t, 128, cfg.RefreshTokenLength())
	require.False(t, cfg.AlwaysIssueNewRefreshToken())
	require.Equal(t, []oauth2.GrantType{oauth2.PasswordGrant}, cfg.GrantTypes())
}

func TestParseConfig_RejectsEachInvalidField(t *testing.T) {
	tests := []struct {
		field  string
		values []any
	}{
		{token.KeyAccessTokenLifetime, []any{"", "80", 40, 59.5, nil, 10_000_000_000, int64(10_000_000_000), float64(1e10), uint64(1 << 63)}},
		{token.KeyRefreshTokenLifetime, []any{"", "80", 40, int64(9_223_372_037), uint(10_000_000_000)}},
		{token.KeyAccessTokenLength, []any{"", "128", 16, 256, 60, 130}},
		{token.KeyRefreshTokenLength, []any{"", "128", 16, 256, 60}},
		{token.KeyTokenType, []any{"", 16, true, "XYZ", "bearer"}},
		{token.KeyAlwaysIssueNewRefreshToken, []any{"", "true", 1}},
		{token.KeyGrantTypes, []any{
			[]any{""},
			[]any{"  "},
			[]any{" invalid_grant_type "},
			[]any{"client_credentials", "password", "invalid"},
			[]any{"passWord"},
			[]any{" password"},
			[]any{},
			[]any{1},
			"password",
		}},
	}

	for _, tt := range tests {
		for _, v := range tt.values {
			t.Run(tt.field, func(t *testing.T) {
				raw := validRawConfig()
				raw[tt.field] = v

				_, err := token.ParseConfig(raw)
				var cfgErr *token.ConfigError
				require.ErrorAs(t, err, &cfgErr, "value %#v", v)
				require.Equal(t, tt.field, cfgErr.Field, "value %#v", v)
			})
		}
	}
}

func TestParseConfig_MissingKey(t *testing.T) {
	for _, key := range []string{
		token.KeyAccessTokenLifetime,
		token.KeyAccessTokenLength,
		token.KeyRefreshTokenLifetime,
		token.KeyRefreshTokenLength,
		token.KeyTokenType,
		token.KeyAlwaysIssueNewRefreshToken,
		token.KeyGrantTypes,
	} {
		t.Run(key, func(t *testing.T) {
			raw := validRawConfig()
			delete(raw, key)

			_, err := token.ParseConfig(raw)
			var cfgErr *token.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, key, cfgErr.Field)
		})
	}
}
