package refresh_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token/idgen"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	refreshrepofake "github.com/jrsteele09/go-oauth-tokens/token/refresh/repofake"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	now     time.Time
	repo    *refreshrepofake.FakeRefreshTokenRepo
	manager *refresh.Manager
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)}
	now := func() time.Time { return f.now }
	f.repo = refreshrepofake.NewFakeRefreshTokenRepo(now)
	f.manager = refresh.NewManager(f.repo, idgen.New(nil), time.Hour, 32, now)
	return f
}

func requireKind(t *testing.T, err error, kind oauth2.ErrorKind) {
	t.Helper()
	got, ok := oauth2.KindOf(err)
	require.True(t, ok, "expected business error, got %v", err)
	require.Equal(t, kind, got)
}

func TestCreateAndVerify(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	tok, err := f.manager.Create(ctx, " web ", " user-1 ")
	require.NoError(t, err)
	require.Len(t, tok, 32)

	rt, err := f.manager.Verify(ctx, "WEB", tok)
	require.NoError(t, err)
	require.Equal(t, "web", rt.ClientID)
	require.Equal(t, "user-1", rt.UserID)
	require.Equal(t, oauth2.FormatTimestamp(f.now.Add(time.Hour)), rt.ExpiredAt)
}

func TestVerifyFailures(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	tok, err := f.manager.Create(ctx, "web", "user-1")
	require.NoError(t, err)

	_, err = f.manager.Verify(ctx, "", tok)
	requireKind(t, err, oauth2.ErrClientIDRefreshTokenRequired)

	_, err = f.manager.Verify(ctx, "web", " ")
	requireKind(t, err, oauth2.ErrClientIDRefreshTokenRequired)

	_, err = f.manager.Verify(ctx, "web", "ffff")
	requireKind(t, err, oauth2.ErrInvalidRefreshToken)

	_, err = f.manager.Verify(ctx, "cli", tok)
	requireKind(t, err, oauth2.ErrInvalidForClient)

	f.now = f.now.Add(time.Hour)
	_, err = f.manager.Verify(ctx, "web", tok)
	require.NoError(t, err)

	f.now = f.now.Add(time.Second)
	_, err = f.manager.Verify(ctx, "web", tok)
	requireKind(t, err, oauth2.ErrExpiredRefreshToken)
}

func TestRotate(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	tok, err := f.manager.Create(ctx, "web", "user-1")
	require.NoError(t, err)
	old, err := f.manager.Verify(ctx, "web", tok)
	require.NoError(t, err)

	next, err := f.manager.Rotate(ctx, old)
	require.NoError(t, err)
	require.NotEqual(t, tok, next)
	require.Equal(t, 1, f.repo.Len())

	_, err = f.manager.Verify(ctx, "web", tok)
	requireKind(t, err, oauth2.ErrInvalidRefreshToken)

	rt, err := f.manager.Verify(ctx, "web", next)
	require.NoError(t, err)
	require.Equal(t, "user-1", rt.UserID)
}

func TestDeleteAndSweep(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.manager.Delete(ctx, ""))
	require.NoError(t, f.manager.Delete(ctx, "never-issued"))

	_, err := f.manager.Create(ctx, "web", "user-1")
	require.NoError(t, err)
	f.now = f.now.Add(2 * time.Hour)

	expired, err := f.manager.Expired(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)

	require.NoError(t, f.manager.DeleteExpired(ctx))
	require.Equal(t, 0, f.repo.Len())
}
