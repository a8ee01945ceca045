package token

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/clients"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/token/idgen"
	"github.com/jrsteele09/go-oauth-tokens/token/refresh"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Manager is the token lifecycle engine. It holds only immutable
// configuration; all mutable state lives in the three stores, so a single
// Manager is safe for concurrent use.
type Manager struct {
	config      Config
	clientRepo  clients.Repo
	accessRepo  AccessTokenRepo
	refreshRepo refresh.Repo
	refresh     *refresh.Manager
	ids         *idgen.Generator
	logger      zerolog.Logger
	nowFunc     func() time.Time
}

type ManagerOption func(*Manager)

// WithNowFunc replaces the clock used for expiry calculations.
func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// WithIDGenerator replaces the default crypto/rand backed generator.
func WithIDGenerator(g *idgen.Generator) ManagerOption {
	return func(m *Manager) {
		m.ids = g
	}
}

func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New validates its collaborators and returns a ready Manager. Any failure
// here is a setup error.
func New(cfg Config, clientRepo clients.Repo, accessRepo AccessTokenRepo, refreshRepo refresh.Repo, options ...ManagerOption) (*Manager, error) {
	if cfg.zero() {
		return nil, errors.New("[token.New] config is required, build it with NewConfig or ParseConfig")
	}
	if clientRepo == nil {
		return nil, errors.New("[token.New] clients repo is required")
	}
	if accessRepo == nil {
		return nil, errors.New("[token.New] access token repo is required")
	}
	if refreshRepo == nil {
		return nil, errors.New("[token.New] refresh token repo is required")
	}

	m := &Manager{
		config:      cfg,
		clientRepo:  clientRepo,
		accessRepo:  accessRepo,
		refreshRepo: refreshRepo,
		logger:      log.Logger,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	if m.ids == nil {
		m.ids = idgen.New(nil)
	}
	if m.ids.Degraded() {
		m.logger.Warn().Str("tier", string(m.ids.Tier())).Msg("token identifiers use a degraded random source")
	}

	m.refresh = refresh.NewManager(refreshRepo, m.ids, cfg.RefreshTokenLifetime(), cfg.RefreshTokenLength(), m.nowFunc)
	return m, nil
}

// Config returns the engine configuration.
func (m *Manager) Config() Config {
	return m.config
}

// verifyClientCredentials resolves clientID in the directory and checks the
// secret. The returned client carries the directory's canonical id and no
// secret.
func (m *Manager) verifyClientCredentials(ctx context.Context, clientID, clientSecret string) (*clients.Client, error) {
	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)

	client, err := m.clientRepo.GetClientByID(ctx, clientID)
	if err != nil && !errors.Is(err, oauth2.ErrNotFound) {
		return nil, errors.Wrap(err, "Manager.verifyClientCredentials GetClientByID")
	}
	if err != nil || client == nil || client.ID == "" {
		return nil, oauth2.ErrClientNotFound.Err()
	}

	if !client.Matches(clientSecret) {
		return nil, oauth2.ErrInvalidClientCredentials.Err()
	}

	return client.WithoutSecret(), nil
}

// createAccessToken issues and stores a new access token. userID may be empty.
func (m *Manager) createAccessToken(ctx context.Context, clientID, userID string) (*oauth2.TokenResponse, error) {
	clientID = strings.TrimSpace(clientID)
	userID = strings.TrimSpace(userID)

	accessToken, err := m.ids.Generate(m.config.AccessTokenLength())
	if err != nil {
		return nil, errors.Wrap(err, "Manager.createAccessToken Generate")
	}

	expiredAt := oauth2.FormatTimestamp(m.nowFunc().Add(m.config.AccessTokenLifetime()))
	if err := m.accessRepo.InsertAccessToken(ctx, accessToken, clientID, userID, expiredAt); err != nil {
		return nil, errors.Wrap(err, "Manager.createAccessToken InsertAccessToken")
	}

	return &oauth2.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   m.config.AccessTokenLifetimeSeconds(),
		TokenType:   m.config.TokenType(),
	}, nil
}
