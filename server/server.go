// Package server exposes the token engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-oauth-tokens/internal/config"
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/oauthmodel"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TokenEngine is the part of token.Manager the HTTP layer drives.
type TokenEngine interface {
	Token(ctx context.Context, req oauthmodel.TokenRequest) (*oauth2.TokenResponse, error)
	VerifyAccessToken(ctx context.Context, tokenType, accessToken string) (*token.AccessToken, error)
	Revoke(ctx context.Context, accessToken, refreshToken string) error
}

var _ TokenEngine = (*token.Manager)(nil)

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	engine  TokenEngine
	metrics *Metrics
	health  HealthCheck
	logger  zerolog.Logger
}

type Option func(*Server)

// WithMetrics shares a metrics set, e.g. with the background sweeper.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithHealthCheck(check HealthCheck) Option {
	return func(s *Server) {
		s.health = check
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func New(cfg config.Config, engine TokenEngine, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if engine == nil {
		return nil, errors.New("[Server New] token engine is required")
	}

	s := &Server{
		env:    cfg.GetEnv(),
		mux:    http.NewServeMux(),
		config: cfg,
		engine: engine,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.health == nil {
		s.health = func(context.Context) error { return nil }
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	s.logger.Info().Msgf("[%-19s] %s", color+paddedMethod+ResetColor, path)
}
