package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "chefs",
		Short:         "Emergent language chef collaboration",
		Long:          "chefs runs a turn-based conversation between LLM chef agents that invent and share shorthand words while designing a tasting menu.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Config file (default $HOME/.chefs/config.toml)")
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAgentsCmd(app),
		newCoursesCmd(app),
		newAuthCmd(app),
		newRunCmd(app),
	)

	return rootCmd
}
