package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-oauth-tokens/clients"
	fakeclientrepo "github.com/jrsteele09/go-oauth-tokens/clients/fakerepo"
	"github.com/jrsteele09/go-oauth-tokens/internal/config"
	"github.com/jrsteele09/go-oauth-tokens/server"
	"github.com/jrsteele09/go-oauth-tokens/storage/bolt"
	tokenredis "github.com/jrsteele09/go-oauth-tokens/storage/redis"
	"github.com/jrsteele09/go-oauth-tokens/storage/sqlite"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	refreshrepofake "github.com/jrsteele09/go-oauth-tokens/token/refresh/repofake"
	tokenrepofake "github.com/jrsteele09/go-oauth-tokens/token/repofake"
	"github.com/rs/zerolog"
)

// stores is the set of collaborators selected by STORAGE_DRIVER.
type stores struct {
	clients clients.Repo
	access  token.AccessTokenRepo
	refresh refresh.Repo
	health  server.HealthCheck
	closers []func() error
}

func (s *stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

type clientSeeder interface {
	Upsert(ctx context.Context, c *clients.Client) error
	Count(ctx context.Context) (int, error)
}

func openStores(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*stores, error) {
	seed, err := clients.ParseCredentials(cfg.GetClientCredentials())
	if err != nil {
		return nil, fmt.Errorf("parsing OAUTH_CLIENTS: %w", err)
	}

	driver := cfg.GetStorageDriver()
	logger.Info().Str("driver", driver).Int("seed_clients", len(seed)).Msg("opening token storage")

	switch driver {
	case config.DriverMemory:
		return memoryStores(seed)

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.GetSQLitePath())
		if err != nil {
			return nil, err
		}
		st := &stores{
			clients: db.Clients(),
			access:  db.AccessTokens(),
			refresh: db.RefreshTokens(),
			health:  db.Ping,
			closers: []func() error{db.Close},
		}
		return seedClients(ctx, st, db.Clients(), seed, logger)

	case config.DriverBolt:
		db, err := bolt.Open(cfg.GetBoltPath())
		if err != nil {
			return nil, err
		}
		st := &stores{
			clients: db.Clients(),
			access:  db.AccessTokens(),
			refresh: db.RefreshTokens(),
			closers: []func() error{db.Close},
		}
		return seedClients(ctx, st, db.Clients(), seed, logger)

	case config.DriverRedis:
		rc := cfg.GetRedis()
		rs, err := tokenredis.NewStorage(ctx, tokenredis.Config{
			Addr:      rc.Addr,
			Password:  rc.Password,
			DB:        rc.DB,
			KeyPrefix: rc.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		// Redis only keeps tokens; the client directory comes from OAUTH_CLIENTS.
		directory, err := fakeclientrepo.NewFakeClientRepo(seed...)
		if err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("redis driver: %w", err)
		}
		return &stores{
			clients: directory,
			access:  rs.AccessTokens(),
			refresh: rs.RefreshTokens(),
			health:  rs.Ping,
			closers: []func() error{rs.Close},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}

func memoryStores(seed []*clients.Client) (*stores, error) {
	directory, err := fakeclientrepo.NewFakeClientRepo(seed...)
	if err != nil {
		return nil, fmt.Errorf("memory driver: %w", err)
	}
	return &stores{
		clients: directory,
		access:  tokenrepofake.NewFakeAccessTokenRepo(nil),
		refresh: refreshrepofake.NewFakeRefreshTokenRepo(nil),
	}, nil
}

func seedClients(ctx context.Context, st *stores, repo clientSeeder, seed []*clients.Client, logger zerolog.Logger) (*stores, error) {
	for _, c := range seed {
		if err := repo.Upsert(ctx, c); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("seeding client %s: %w", c.ID, err)
		}
	}
	n, err := repo.Count(ctx)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if n == 0 {
		logger.Warn().Msg("no clients registered; every token request will fail client authentication")
	} else {
		logger.Debug().Int("clients", n).Msg("client directory ready")
	}
	return st, nil
}
