package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-oauth-tokens/clients"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/storage/sqlite"
	"github.com/jrsteele09/go-oauth-tokens/storage/storagetest"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, opts ...sqlite.Option) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "tokens.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTokenStores(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, clock *storagetest.Clock) (token.AccessTokenRepo, refresh.Repo) {
		db := openTestDB(t, sqlite.WithNowFunc(clock.Now))
		return db.AccessTokens(), db.RefreshTokens()
	})
}

func TestOpen_InMemory(t *testing.T) {
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	n, err := db.Clients().Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.db")

	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Clients().Upsert(context.Background(), &clients.Client{ID: "client-1", Secret: "s"}))
	require.NoError(t, db.Close())

	db, err = sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	n, err := db.Clients().Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestClientStore(t *testing.T) {
	db := openTestDB(t)
	store := db.Clients()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, &clients.Client{ID: "Client-1", Secret: "secret-1"}))

	c, err := store.GetClientByID(ctx, " client-1 ")
	require.NoError(t, err)
	require.Equal(t, "Client-1", c.ID)
	require.Equal(t, "secret-1", c.Secret)

	require.NoError(t, store.Upsert(ctx, &clients.Client{ID: "CLIENT-1", Secret: "secret-2"}))
	c, err = store.GetClientByID(ctx, "client-1")
	require.NoError(t, err)
	require.Equal(t, "secret-2", c.Secret)

	_, err = store.GetClientByID(ctx, "missing")
	require.ErrorIs(t, err, oauth2.ErrNotFound)
}

func TestInsert_DuplicateToken(t *testing.T) {
	db := openTestDB(t)
	store := db.AccessTokens()
	ctx := context.Background()

	require.NoError(t, store.InsertAccessToken(ctx, "ab12", "client-1", "", "2030-01-01 00:00:00"))
	err := store.InsertAccessToken(ctx, "AB12", "client-1", "", "2030-01-01 00:00:00")
	require.ErrorIs(t, err, sqlite.ErrDuplicateToken)
}
