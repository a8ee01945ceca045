package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T, driver string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENV", "TEST")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORAGE_DRIVER", driver)
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "db", "tokens.db"))
	t.Setenv("BOLT_PATH", filepath.Join(dir, "db", "tokens.bolt"))
	t.Setenv("OAUTH_CLIENTS", "web:secret, cli:other")
	t.Setenv("OAUTH_CONFIG_FILE", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func issue(t *testing.T, args ...string) oauth2.TokenResponse {
	t.Helper()
	out, err := execute(t, append([]string{"token"}, args...)...)
	require.NoError(t, err)

	var resp oauth2.TokenResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestTokenCommand_Memory(t *testing.T) {
	setupEnv(t, "memory")

	resp := issue(t, "--client-id", "web", "--client-secret", "secret")
	require.Len(t, resp.AccessToken, 64)
	require.Empty(t, resp.RefreshToken)
	require.Equal(t, 3600, resp.ExpiresIn)
}

func TestTokenCommand_BusinessError(t *testing.T) {
	setupEnv(t, "memory")

	_, err := execute(t, "token", "--client-id", "nobody", "--client-secret", "x")
	kind, ok := oauth2.KindOf(err)
	require.True(t, ok)
	require.Equal(t, oauth2.ErrClientNotFound, kind)
}

func TestLifecycleAcrossInvocations(t *testing.T) {
	for _, driver := range []string{"sqlite", "bolt"} {
		t.Run(driver, func(t *testing.T) {
			setupEnv(t, driver)

			resp := issue(t, "--grant-type", "password", "--client-id", "WEB", "--client-secret", "SECRET", "--user-id", "user-1")
			require.NotEmpty(t, resp.RefreshToken)

			out, err := execute(t, "verify", "--access-token", resp.AccessToken)
			require.NoError(t, err)
			var row token.AccessToken
			require.NoError(t, json.Unmarshal([]byte(out), &row))
			require.Equal(t, "user-1", row.UserID)

			rotated := issue(t, "--grant-type", "refresh_token", "--client-id", "web", "--client-secret", "secret", "--refresh-token", resp.RefreshToken)
			require.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

			_, err = execute(t, "revoke", "--access-token", resp.AccessToken, "--refresh-token", rotated.RefreshToken)
			require.NoError(t, err)

			_, err = execute(t, "verify", "--access-token", resp.AccessToken)
			kind, ok := oauth2.KindOf(err)
			require.True(t, ok)
			require.Equal(t, oauth2.ErrInvalidAccessToken, kind)

			_, err = execute(t, "sweep")
			require.NoError(t, err)
		})
	}
}

func TestRedisDriver(t *testing.T) {
	mr := miniredis.RunT(t)
	setupEnv(t, "redis")
	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("REDIS_KEY_PREFIX", "test:")

	resp := issue(t, "--client-id", "cli", "--client-secret", "other")

	_, err := execute(t, "verify", "--access-token", resp.AccessToken)
	require.NoError(t, err)
	require.True(t, mr.Exists("test:access:token:"+resp.AccessToken))
}

func TestSweepDryRun(t *testing.T) {
	setupEnv(t, "sqlite")

	out, err := execute(t, "sweep", "--dry-run")
	require.NoError(t, err)

	var expired token.ExpiredTokens
	require.NoError(t, json.Unmarshal([]byte(out), &expired))
	require.Empty(t, expired.AccessTokens)
	require.Empty(t, expired.RefreshTokens)
}

func TestEngineConfigFile(t *testing.T) {
	setupEnv(t, "memory")
	path := filepath.Join(t.TempDir(), "oauth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("access_token_lifetime: 120\naccess_token_length: 32\n"), 0o600))

	resp := issue(t, "--config", path, "--client-id", "web", "--client-secret", "secret")
	require.Equal(t, 120, resp.ExpiresIn)
	require.Len(t, resp.AccessToken, 32)

	require.NoError(t, os.WriteFile(path, []byte("access_token_length: 20\n"), 0o600))
	_, err := execute(t, "token", "--config", path, "--client-id", "web", "--client-secret", "secret")
	var cfgErr *token.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestInvalidClientSeed(t *testing.T) {
	setupEnv(t, "memory")
	t.Setenv("OAUTH_CLIENTS", "web")

	_, err := execute(t, "sweep")
	require.Error(t, err)
}

func TestUnknownStorageDriver(t *testing.T) {
	setupEnv(t, "mysql")

	_, err := execute(t, "sweep")
	require.Error(t, err)
}
