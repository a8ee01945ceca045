package clients_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-oauth-tokens/clients"
	fakeclientrepo "github.com/jrsteele09/go-oauth-tokens/clients/fakerepo"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/stretchr/testify/require"
)

func TestClientMatches(t *testing.T) {
	c := &clients.Client{ID: "web", Secret: "S3cret"}
	require.True(t, c.Matches("s3CRET"))
	require.True(t, c.Matches(" S3cret "))
	require.False(t, c.Matches("other"))

	stripped := c.WithoutSecret()
	require.Equal(t, "web", stripped.ID)
	require.Empty(t, stripped.Secret)
	require.Equal(t, "S3cret", c.Secret)
}

func TestParseCredentials(t *testing.T) {
	got, err := clients.ParseCredentials(" web:one , ,cli : two")
	require.NoError(t, err)
	require.Equal(t, []*clients.Client{{ID: "web", Secret: "one"}, {ID: "cli", Secret: "two"}}, got)

	got, err = clients.ParseCredentials("")
	require.NoError(t, err)
	require.Empty(t, got)

	for _, bad := range []string{"web", ":secret", "web:", "web:one,cli"} {
		_, err := clients.ParseCredentials(bad)
		require.ErrorIs(t, err, clients.ErrInvalidCredentialEntry, bad)
	}
}

func TestFakeClientRepo(t *testing.T) {
	_, err := fakeclientrepo.NewFakeClientRepo()
	require.ErrorIs(t, err, clients.ErrNoClients)

	repo, err := fakeclientrepo.NewFakeClientRepo(&clients.Client{ID: "Web", Secret: "one"})
	require.NoError(t, err)

	got, err := repo.GetClientByID(context.Background(), " WEB ")
	require.NoError(t, err)
	require.Equal(t, "Web", got.ID)

	got.Secret = "mutated"
	again, err := repo.GetClientByID(context.Background(), "web")
	require.NoError(t, err)
	require.Equal(t, "one", again.Secret)

	_, err = repo.GetClientByID(context.Background(), "cli")
	require.ErrorIs(t, err, oauth2.ErrNotFound)
}
