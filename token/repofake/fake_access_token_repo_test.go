package tokenrepofake_test

import (
	"testing"

	"github.com/jrsteele09/go-oauth-tokens/storage/storagetest"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	refreshrepofake "github.com/jrsteele09/go-oauth-tokens/token/refresh/repofake"
	tokenrepofake "github.com/jrsteele09/go-oauth-tokens/token/repofake"
)

func TestFakeStores(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, clock *storagetest.Clock) (token.AccessTokenRepo, refresh.Repo) {
		return tokenrepofake.NewFakeAccessTokenRepo(clock.Now), refreshrepofake.NewFakeRefreshTokenRepo(clock.Now)
	})
}
