package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/internal/config"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "APP_NAME", "ENV", "LOG_LEVEL", "ALLOWED_ORIGINS", "STORAGE_DRIVER",
	"SQLITE_PATH", "BOLT_PATH", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"REDIS_KEY_PREFIX", "OAUTH_CONFIG_FILE", "OAUTH_CLIENTS", "SWEEP_INTERVAL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.GetPort())
	require.Equal(t, "DEV", cfg.GetEnv())
	require.Equal(t, "info", cfg.GetLogLevel())
	require.Equal(t, config.DriverMemory, cfg.GetStorageDriver())
	require.Equal(t, 10*time.Minute, cfg.GetSweepInterval())
	require.Equal(t, "oauth:", cfg.GetRedis().KeyPrefix)
	require.Empty(t, cfg.GetAllowedOrigins())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9090")
	t.Setenv("STORAGE_DRIVER", " Redis ")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("OAUTH_CLIENTS", "web:secret")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.GetPort())
	require.Equal(t, config.DriverRedis, cfg.GetStorageDriver())
	require.Equal(t, config.RedisSettings{Addr: "cache:6379", DB: 3, KeyPrefix: "oauth:"}, cfg.GetRedis())
	require.Equal(t, 30*time.Second, cfg.GetSweepInterval())
	require.Equal(t, "web:secret", cfg.GetClientCredentials())

	origins := cfg.GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://a.example"))
	require.True(t, origins.IsAllowedOrigin("https://b.example"))
	require.False(t, origins.IsAllowedOrigin(""))
	require.Equal(t, "https://a.example, https://b.example", origins.String())
}

func TestFromEnvRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mysql"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"negative sweep", map[string]string{"SWEEP_INTERVAL": "-1m"}},
		{"bad duration", map[string]string{"SWEEP_INTERVAL": "often"}},
		{"bad redis db", map[string]string{"REDIS_DB": "zero"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := config.FromEnv()
			require.Error(t, err)
		})
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOAuthConfigDefaults(t *testing.T) {
	cfg, err := config.LoadOAuthConfig("")
	require.NoError(t, err)
	require.Equal(t, time.Hour, cfg.AccessTokenLifetime())
	require.Equal(t, 64, cfg.AccessTokenLength())
	require.Equal(t, 14*24*time.Hour, cfg.RefreshTokenLifetime())
	require.Equal(t, oauth2.BearerTokenType, cfg.TokenType())
	require.True(t, cfg.AlwaysIssueNewRefreshToken())
	require.ElementsMatch(t, oauth2.SupportedGrantTypes, cfg.GrantTypes())
}

func TestLoadOAuthConfigYAML(t *testing.T) {
	path := writeFile(t, "oauth.yaml", `
access_token_lifetime: 120
access_token_length: 32
always_issue_new_refresh_token: false
grant_types:
  - client_credentials
  - refresh_token
`)

	cfg, err := config.LoadOAuthConfig(path)
	require.NoError(t, err)
	require.Equal(t, 120, cfg.AccessTokenLifetimeSeconds())
	require.Equal(t, 32, cfg.AccessTokenLength())
	require.Equal(t, 64, cfg.RefreshTokenLength())
	require.False(t, cfg.AlwaysIssueNewRefreshToken())
	require.Equal(t, []oauth2.GrantType{oauth2.ClientCredentialsGrant, oauth2.RefreshTokenGrant}, cfg.GrantTypes())
}

func TestLoadOAuthConfigJSON(t *testing.T) {
	path := writeFile(t, "oauth.json", `{"refresh_token_lifetime": 86400, "refresh_token_length": 128}`)

	cfg, err := config.LoadOAuthConfig(path)
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.RefreshTokenLifetime())
	require.Equal(t, 128, cfg.RefreshTokenLength())
}

func TestLoadOAuthConfigInvalid(t *testing.T) {
	path := writeFile(t, "oauth.yaml", "access_token_length: 20\n")

	_, err := config.LoadOAuthConfig(path)
	var cfgErr *token.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, token.KeyAccessTokenLength, cfgErr.Field)
}

func TestLoadOAuthConfigMissingFile(t *testing.T) {
	_, err := config.LoadOAuthConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
