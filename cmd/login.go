package cmd

import (
	"context"
	"fmt"

	authadapter "github.com/bnema/emergent-chefs/internal/adapters/auth"
	"github.com/bnema/emergent-chefs/internal/application"
	"github.com/spf13/cobra"
)

func newAuthLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Obtain a provider API key through the browser and store it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKeyLogin(cmd, app)
		},
	}
}

func runKeyLogin(cmd *cobra.Command, app *app) error {
	pkce, err := authadapter.NewPKCE()
	if err != nil {
		return fmt.Errorf("generate pkce: %w", err)
	}
	state, err := authadapter.NewState()
	if err != nil {
		return fmt.Errorf("generate auth state: %w", err)
	}

	server, err := authadapter.StartCallbackServer(app.keyLogin.ListenAddr, state)
	if err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}

	authURL, err := authadapter.BuildAuthorizationURL(authadapter.AuthorizationRequest{
		AuthURL:       app.keyLogin.AuthURL,
		CallbackURL:   server.CallbackURL(),
		CodeChallenge: pkce.Challenge,
	})
	if err != nil {
		_ = server.Close()
		return fmt.Errorf("build authorization url: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to authorize the chefs:\n%s\n", authURL)
	if app.keyLogin.open != nil {
		if err := app.keyLogin.open(authURL); err != nil {
			_ = server.Close()
			return fmt.Errorf("open authorization url: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), app.keyLogin.Timeout)
	defer cancel()

	code, err := server.WaitForCode(ctx)
	if err != nil {
		return fmt.Errorf("wait for auth callback: %w", err)
	}

	key, err := authadapter.ExchangeCodeForKey(cmd.Context(), app.httpClient, authadapter.KeyExchangeRequest{
		KeysURL:      app.keyLogin.KeysURL,
		Code:         code,
		CodeVerifier: pkce.Verifier,
	})
	if err != nil {
		return err
	}

	if err := app.credentials.SetAPIKey(cmd.Context(), application.SetAPIKeyCommand{Value: key}); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "API key stored under %s\n", app.credentials.SecretKey())
	return nil
}
