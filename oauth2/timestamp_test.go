package oauth2_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/stretchr/testify/require"
)

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 5, 7, 999, time.Local)

	s := oauth2.FormatTimestamp(now)
	require.Equal(t, "2024-03-01 09:05:07", s)

	parsed, err := oauth2.ParseTimestamp(s)
	require.NoError(t, err)
	require.True(t, parsed.Equal(now.Truncate(time.Second)))

	_, err = oauth2.ParseTimestamp("2024-03-01T09:05:07Z")
	require.Error(t, err)
}

func TestExpiredBy(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	require.True(t, oauth2.ExpiredBy(oauth2.FormatTimestamp(now.Add(-time.Second)), now))
	require.True(t, oauth2.ExpiredBy(oauth2.FormatTimestamp(now), now))
	require.False(t, oauth2.ExpiredBy(oauth2.FormatTimestamp(now.Add(time.Second)), now))
}

func TestTypes(t *testing.T) {
	require.True(t, oauth2.PasswordGrant.IsSupported())
	require.False(t, oauth2.GrantType("passWord").IsSupported())
	require.False(t, oauth2.GrantType("authorization_code").IsSupported())

	require.True(t, oauth2.BearerTokenType.IsSupported())
	require.False(t, oauth2.TokenType("bearer").IsSupported())
}
