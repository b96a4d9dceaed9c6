package cmd

import (
	"github.com/bnema/emergent-chefs/internal/application"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the provider API key",
	}

	cmd.AddCommand(newAuthLoginCmd(app), newAuthSetCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var secretValue string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the provider API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.credentials.SetAPIKey(cmd.Context(), application.SetAPIKeyCommand{Value: secretValue})
		},
	}

	cmd.Flags().StringVar(&secretValue, "secret-value", "", "API key value")
	_ = cmd.MarkFlagRequired("secret-value")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored provider API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.credentials.RemoveAPIKey(cmd.Context())
		},
	}
}
