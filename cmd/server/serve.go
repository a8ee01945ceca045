package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/go-oauth-tokens/internal/sweeper"
	"github.com/jrsteele09/go-oauth-tokens/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP token endpoints and the expired token sweeper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	displayAppname(a.cfg.GetAppName())

	manager, st, err := a.engine(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	metrics := server.NewMetrics()
	opts := []server.Option{server.WithMetrics(metrics), server.WithLogger(a.logger)}
	if st.health != nil {
		opts = append(opts, server.WithHealthCheck(st.health))
	}
	handler, err := server.New(a.cfg, manager, opts...)
	if err != nil {
		return err
	}

	if interval := a.cfg.GetSweepInterval(); interval > 0 {
		sw, err := sweeper.New(manager, interval, sweeper.WithRecorder(metrics), sweeper.WithLogger(a.logger))
		if err != nil {
			return err
		}
		go sw.Run(ctx)
	}

	httpServer := &http.Server{
		Addr:              a.cfg.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- listenAndServe(a.logger, httpServer)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return shutdown(a.logger, httpServer)
}

func listenAndServe(logger zerolog.Logger, httpServer *http.Server) error {
	logger.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(logger zerolog.Logger, httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
