package config

import (
	"fmt"

	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/spf13/viper"
)

// LoadOAuthConfig builds the engine configuration from the defaults overlaid
// with the YAML, JSON or TOML file at path. An empty path yields the defaults.
func LoadOAuthConfig(path string) (token.Config, error) {
	v := viper.New()
	seedDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return token.Config{}, fmt.Errorf("[config.LoadOAuthConfig] reading %s: %w", path, err)
		}
	}

	cfg, err := token.ParseConfig(v.AllSettings())
	if err != nil {
		return token.Config{}, fmt.Errorf("[config.LoadOAuthConfig] %w", err)
	}
	return cfg, nil
}

func seedDefaults(v *viper.Viper) {
	d := token.DefaultConfigSettings()
	v.SetDefault(token.KeyAccessTokenLifetime, *d.AccessTokenLifetime)
	v.SetDefault(token.KeyAccessTokenLength, *d.AccessTokenLength)
	v.SetDefault(token.KeyRefreshTokenLifetime, *d.RefreshTokenLifetime)
	v.SetDefault(token.KeyRefreshTokenLength, *d.RefreshTokenLength)
	v.SetDefault(token.KeyTokenType, *d.TokenType)
	v.SetDefault(token.KeyAlwaysIssueNewRefreshToken, *d.AlwaysIssueNewRefreshToken)
	v.SetDefault(token.KeyGrantTypes, d.GrantTypes)
}
