package oauth2_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	kinds := oauth2.Kinds()
	require.Len(t, kinds, 12)
	require.Equal(t, oauth2.ErrClientNotFound, kinds[0])
	require.Equal(t, oauth2.ErrUserIDRequired, kinds[len(kinds)-1])
	require.Equal(t, kinds, oauth2.Kinds())

	kinds[0] = "tampered"
	require.Equal(t, oauth2.ErrClientNotFound, oauth2.Kinds()[0])

	seen := map[oauth2.ErrorKind]bool{}
	for _, k := range oauth2.Kinds() {
		require.False(t, seen[k], k)
		seen[k] = true
		require.True(t, k.Valid(), k)
		require.NotEmpty(t, k.Message(), k)
		require.Contains(t, []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden}, k.Status(), k)
	}
}

func TestKindStatuses(t *testing.T) {
	require.Equal(t, http.StatusUnauthorized, oauth2.ErrExpiredAccessToken.Status())
	require.Equal(t, http.StatusForbidden, oauth2.ErrInvalidAccessToken.Status())
	require.Equal(t, http.StatusForbidden, oauth2.ErrInvalidTokenType.Status())
	require.Equal(t, http.StatusForbidden, oauth2.ErrTokenTypeAccessTokenRequired.Status())
	require.Equal(t, http.StatusBadRequest, oauth2.ErrExpiredRefreshToken.Status())

	unknown := oauth2.ErrorKind("nope")
	require.False(t, unknown.Valid())
	require.Equal(t, http.StatusInternalServerError, unknown.Status())
}

func TestError(t *testing.T) {
	err := oauth2.ErrInvalidGrantType.Errf("grant_type must be one of password")
	require.Equal(t, "invalid_grant_type: grant_type must be one of password", err.Error())
	require.Equal(t, http.StatusBadRequest, err.Status)

	wrapped := fmt.Errorf("context: %w", err)
	require.ErrorIs(t, wrapped, oauth2.ErrInvalidGrantType.Err())
	require.NotErrorIs(t, wrapped, oauth2.ErrUserIDRequired.Err())

	kind, ok := oauth2.KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, oauth2.ErrInvalidGrantType, kind)

	_, ok = oauth2.KindOf(errors.New("disk full"))
	require.False(t, ok)
}
