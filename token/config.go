package token

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/internal/utils"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
)

// Configuration keys, as used by ParseConfig and config files.
const (
	KeyAccessTokenLifetime        = "access_token_lifetime"
	KeyAccessTokenLength          = "access_token_length"
	KeyRefreshTokenLifetime       = "refresh_token_lifetime"
	KeyRefreshTokenLength         = "refresh_token_length"
	KeyTokenType                  = "token_type"
	KeyAlwaysIssueNewRefreshToken = "always_issue_new_refresh_token"
	KeyGrantTypes                 = "grant_types"
)

const (
	minLifetimeSeconds = 60
	// maxLifetimeSeconds is the longest lifetime a time.Duration can hold.
	maxLifetimeSeconds = math.MaxInt64 / int64(time.Second)
	minTokenLength     = 32
	maxTokenLength     = 128
	tokenLengthStep    = 8
)

const (
	reasonLifetime  = "cannot be empty and must be integer and must be from 60 to 9223372036 seconds"
	reasonLength    = "cannot be empty and must be integer and must be from 32 to 128 chars and must be divisible by 8"
	reasonBool      = "must be boolean"
	reasonGrantType = "cannot be empty and must be from client_credentials, password, refresh_token"
)

// ConfigError is a fatal setup error naming the offending configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("`%s` %s", e.Field, e.Reason)
}

// ConfigSettings is the unvalidated input to NewConfig. Nil fields are
// treated as missing.
type ConfigSettings struct {
	AccessTokenLifetime        *int
	AccessTokenLength          *int
	RefreshTokenLifetime       *int
	RefreshTokenLength         *int
	TokenType                  *string
	AlwaysIssueNewRefreshToken *bool
	GrantTypes                 []string
}

// DefaultConfigSettings returns one hour access tokens, fourteen day refresh
// tokens, 64 character identifiers, Bearer tokens, rotation on refresh and
// every supported grant type.
func DefaultConfigSettings() ConfigSettings {
	grants := make([]string, 0, len(oauth2.SupportedGrantTypes))
	for _, g := range oauth2.SupportedGrantTypes {
		grants = append(grants, string(g))
	}
	return ConfigSettings{
		AccessTokenLifetime:        utils.Ptr(3600),
		AccessTokenLength:          utils.Ptr(64),
		RefreshTokenLifetime:       utils.Ptr(1209600),
		RefreshTokenLength:         utils.Ptr(64),
		TokenType:                  utils.Ptr(string(oauth2.BearerTokenType)),
		AlwaysIssueNewRefreshToken: utils.Ptr(true),
		GrantTypes:                 grants,
	}
}

// Config is the validated, immutable engine configuration.
type Config struct {
	accessTokenLifetime        int
	accessTokenLength          int
	refreshTokenLifetime       int
	refreshTokenLength         int
	tokenType                  oauth2.TokenType
	alwaysIssueNewRefreshToken bool
	grantTypes                 []oauth2.GrantType
}

// NewConfig validates s field by field and returns the first violation as a
// *ConfigError.
func NewConfig(s ConfigSettings) (Config, error) {
	if err := validateLifetime(KeyAccessTokenLifetime, s.AccessTokenLifetime); err != nil {
		return Config{}, err
	}
	if err := validateLength(KeyAccessTokenLength, s.AccessTokenLength); err != nil {
		return Config{}, err
	}
	if err := validateLifetime(KeyRefreshTokenLifetime, s.RefreshTokenLifetime); err != nil {
		return Config{}, err
	}
	if err := validateLength(KeyRefreshTokenLength, s.RefreshTokenLength); err != nil {
		return Config{}, err
	}

	tokenType, err := validateTokenType(s.TokenType)
	if err != nil {
		return Config{}, err
	}

	if s.AlwaysIssueNewRefreshToken == nil {
		return Config{}, &ConfigError{Field: KeyAlwaysIssueNewRefreshToken, Reason: reasonBool}
	}

	grantTypes, err := validateGrantTypes(s.GrantTypes)
	if err != nil {
		return Config{}, err
	}

	return Config{
		accessTokenLifetime:        *s.AccessTokenLifetime,
		accessTokenLength:          *s.AccessTokenLength,
		refreshTokenLifetime:       *s.RefreshTokenLifetime,
		refreshTokenLength:         *s.RefreshTokenLength,
		tokenType:                  tokenType,
		alwaysIssueNewRefreshToken: *s.AlwaysIssueNewRefreshToken,
		grantTypes:                 grantTypes,
	}, nil
}

// ParseConfig validates loosely typed settings such as a decoded YAML or JSON
// document. Values of the wrong type are rejected rather than coerced; JSON
// numbers are accepted for integer fields only when they are whole.
func ParseConfig(raw map[string]any) (Config, error) {
	var s ConfigSettings
	var err error

	if s.AccessTokenLifetime, err = intSetting(raw, KeyAccessTokenLifetime, reasonLifetime); err != nil {
		return Config{}, err
	}
	if s.AccessTokenLength, err = intSetting(raw, KeyAccessTokenLength, reasonLength); err != nil {
		return Config{}, err
	}
	if s.RefreshTokenLifetime, err = intSetting(raw, KeyRefreshTokenLifetime, reasonLifetime); err != nil {
		return Config{}, err
	}
	if s.RefreshTokenLength, err = intSetting(raw, KeyRefreshTokenLength, reasonLength); err != nil {
		return Config{}, err
	}

	if v, ok := raw[KeyTokenType]; ok {
		str, isString := v.(string)
		if !isString {
			return Config{}, tokenTypeError()
		}
		s.TokenType = &str
	}

	if v, ok := raw[KeyAlwaysIssueNewRefreshToken]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return Config{}, &ConfigError{Field: KeyAlwaysIssueNewRefreshToken, Reason: reasonBool}
		}
		s.AlwaysIssueNewRefreshToken = &b
	}

	if v, ok := raw[KeyGrantTypes]; ok {
		grants, err := stringList(v)
		if err != nil {
			return Config{}, err
		}
		s.GrantTypes = grants
	}

	return NewConfig(s)
}

func (c Config) AccessTokenLifetime() time.Duration {
	return time.Duration(c.accessTokenLifetime) * time.Second
}

// AccessTokenLifetimeSeconds is reported to clients as expires_in.
func (c Config) AccessTokenLifetimeSeconds() int {
	return c.accessTokenLifetime
}

func (c Config) AccessTokenLength() int {
	return c.accessTokenLength
}

func (c Config) RefreshTokenLifetime() time.Duration {
	return time.Duration(c.refreshTokenLifetime) * time.Second
}

func (c Config) RefreshTokenLength() int {
	return c.refreshTokenLength
}

func (c Config) TokenType() oauth2.TokenType {
	return c.tokenType
}

func (c Config) AlwaysIssueNewRefreshToken() bool {
	return c.alwaysIssueNewRefreshToken
}

// GrantTypes returns a copy of the configured grant types.
func (c Config) GrantTypes() []oauth2.GrantType {
	return slices.Clone(c.grantTypes)
}

// AllowsGrant reports whether g is configured. The match is exact.
func (c Config) AllowsGrant(g oauth2.GrantType) bool {
	return slices.Contains(c.grantTypes, g)
}

func (c Config) grantTypesString() string {
	names := make([]string, 0, len(c.grantTypes))
	for _, g := range c.grantTypes {
		names = append(names, string(g))
	}
	return strings.Join(names, ", ")
}

// zero reports whether c was never produced by NewConfig.
func (c Config) zero() bool {
	return c.accessTokenLength == 0
}

func validateLifetime(field string, v *int) error {
	if v == nil || *v < minLifetimeSeconds || int64(*v) > maxLifetimeSeconds {
		return &ConfigError{Field: field, Reason: reasonLifetime}
	}
	return nil
}

func validateLength(field string, v *int) error {
	if v == nil || *v < minTokenLength || *v > maxTokenLength || *v%tokenLengthStep != 0 {
		return &ConfigError{Field: field, Reason: reasonLength}
	}
	return nil
}

func validateTokenType(v *string) (oauth2.TokenType, error) {
	if v == nil {
		return "", tokenTypeError()
	}
	tokenType := oauth2.TokenType(strings.TrimSpace(*v))
	if !tokenType.IsSupported() {
		return "", tokenTypeError()
	}
	return tokenType, nil
}

func validateGrantTypes(v []string) ([]oauth2.GrantType, error) {
	if len(v) == 0 {
		return nil, &ConfigError{Field: KeyGrantTypes, Reason: reasonGrantType}
	}
	out := make([]oauth2.GrantType, 0, len(v))
	for _, name := range v {
		g := oauth2.GrantType(name)
		if !g.IsSupported() {
			return nil, &ConfigError{Field: KeyGrantTypes, Reason: reasonGrantType}
		}
		if !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	return out, nil
}

func tokenTypeError() *ConfigError {
	names := make([]string, 0, len(oauth2.SupportedTokenTypes))
	for _, t := range oauth2.SupportedTokenTypes {
		names = append(names, string(t))
	}
	return &ConfigError{Field: KeyTokenType, Reason: "cannot be empty and must be in " + strings.Join(names, ", ")}
}

func intSetting(raw map[string]any, key, reason string) (*int, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		if uint64(x) > uint64(maxLifetimeSeconds) {
			return nil, &ConfigError{Field: key, Reason: reason}
		}
		n = int64(x)
	case uint64:
		if x > uint64(maxLifetimeSeconds) {
			return nil, &ConfigError{Field: key, Reason: reason}
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > float64(maxLifetimeSeconds) {
			return nil, &ConfigError{Field: key, Reason: reason}
		}
		n = int64(x)
	default:
		return nil, &ConfigError{Field: key, Reason: reason}
	}
	if n < -maxLifetimeSeconds || n > maxLifetimeSeconds {
		return nil, &ConfigError{Field: key, Reason: reason}
	}
	return utils.Ptr(int(n)), nil
}

func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		if out, ok := utils.ToStringSlice(list); ok {
			return out, nil
		}
	}
	return nil, &ConfigError{Field: KeyGrantTypes, Reason: reasonGrantType}
}
