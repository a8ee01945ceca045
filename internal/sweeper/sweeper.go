// Package sweeper periodically deletes expired tokens.
package sweeper

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
)

const defaultMaxTries = 4

// Engine is the sweep operation of token.Manager.
type Engine interface {
	DeleteExpiredTokens(ctx context.Context) error
}

// Recorder counts finished sweeps.
type Recorder interface {
	ObserveSweep(err error)
}

type Sweeper struct {
	engine   Engine
	interval time.Duration
	maxTries uint
	backOff  func() backoff.BackOff
	recorder Recorder
	logger   zerolog.Logger
}

type Option func(*Sweeper)

func WithRecorder(r Recorder) Option {
	return func(s *Sweeper) {
		s.recorder = r
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

// WithBackOff replaces the exponential retry policy of a failed sweep.
func WithBackOff(newBackOff func() backoff.BackOff, maxTries uint) Option {
	return func(s *Sweeper) {
		s.backOff = newBackOff
		s.maxTries = maxTries
	}
}

func New(engine Engine, interval time.Duration, opts ...Option) (*Sweeper, error) {
	if engine == nil {
		return nil, errors.New("[sweeper.New] engine is required")
	}
	if interval <= 0 {
		return nil, errors.New("[sweeper.New] interval must be positive")
	}
	s := &Sweeper{
		engine:   engine,
		interval: interval,
		maxTries: defaultMaxTries,
		backOff:  func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run sweeps every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("expired token sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("expired token sweeper stopped")
			return
		case <-ticker.C:
			_ = s.SweepOnce(ctx)
		}
	}
}

// SweepOnce deletes expired tokens, retrying failures with backoff.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, s.engine.DeleteExpiredTokens(ctx)
	},
		backoff.WithBackOff(s.backOff()),
		backoff.WithMaxTries(s.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn().Err(err).Dur("retry_in", next).Msg("expired token sweep failed")
		}),
	)

	if s.recorder != nil {
		s.recorder.ObserveSweep(err)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("expired token sweep gave up")
		return err
	}
	s.logger.Debug().Msg("expired tokens swept")
	return nil
}
