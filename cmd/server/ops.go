package main

import (
	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/oauthmodel"
	"github.com/spf13/cobra"
)

func newSweepCommand(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired access and refresh tokens once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, st, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if dryRun {
				expired, err := manager.ExpiredTokens(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), expired)
			}
			if err := manager.DeleteExpiredTokens(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info().Msg("expired tokens deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the expired tokens instead of deleting them")
	return cmd
}

func newTokenCommand(a *app) *cobra.Command {
	var req oauthmodel.TokenRequest
	var grantType string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue tokens for a grant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, st, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			req.GrantType = oauth2.GrantType(grantType)
			resp, err := manager.Token(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&grantType, "grant-type", string(oauth2.ClientCredentialsGrant), "client_credentials, password or refresh_token")
	cmd.Flags().StringVar(&req.ClientID, "client-id", "", "client id")
	cmd.Flags().StringVar(&req.ClientSecret, "client-secret", "", "client secret")
	cmd.Flags().StringVar(&req.UserID, "user-id", "", "user id (password grant)")
	cmd.Flags().StringVar(&req.RefreshToken, "refresh-token", "", "refresh token (refresh_token grant)")
	return cmd
}

func newVerifyCommand(a *app) *cobra.Command {
	var tokenType, accessToken string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check an access token and print its row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, st, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			row, err := manager.VerifyAccessToken(cmd.Context(), tokenType, accessToken)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), row)
		},
	}
	cmd.Flags().StringVar(&tokenType, "token-type", string(oauth2.BearerTokenType), "token type")
	cmd.Flags().StringVar(&accessToken, "access-token", "", "access token")
	return cmd
}

func newRevokeCommand(a *app) *cobra.Command {
	var req oauthmodel.RevokeRequest
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Delete an access token, a refresh token or both",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, st, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			req = req.Normalise()
			return manager.Revoke(cmd.Context(), req.AccessToken, req.RefreshToken)
		},
	}
	cmd.Flags().StringVar(&req.AccessToken, "access-token", "", "access token")
	cmd.Flags().StringVar(&req.RefreshToken, "refresh-token", "", "refresh token")
	return cmd
}
