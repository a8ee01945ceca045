package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jrsteele09/go-oauth-tokens/internal/config"
	"github.com/jrsteele09/go-oauth-tokens/internal/logging"
	"github.com/jrsteele09/go-oauth-tokens/token"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	configFile string
	cfg        config.Config
	logger     zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "oauth-tokens",
		Short:         "OAuth2 bearer token service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "engine settings file (yaml, json or toml); overrides OAUTH_CONFIG_FILE")

	root.AddCommand(
		newServeCommand(a),
		newSweepCommand(a),
		newTokenCommand(a),
		newVerifyCommand(a),
		newRevokeCommand(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.Setup(cfg.GetLogLevel(), cfg.GetEnv())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if a.configFile == "" {
		a.configFile = cfg.GetOAuthConfigFile()
	}
	return nil
}

// engine opens the configured stores and builds the token manager over them.
// The caller closes the returned stores.
func (a *app) engine(ctx context.Context) (*token.Manager, *stores, error) {
	engineCfg, err := config.LoadOAuthConfig(a.configFile)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStores(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}

	manager, err := token.New(engineCfg, st.clients, st.access, st.refresh, token.WithLogger(a.logger))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return manager, st, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
