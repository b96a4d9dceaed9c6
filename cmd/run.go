package cmd

import (
	"fmt"

	"github.com/bnema/emergent-chefs/internal/adapters/llm/openrouter"
	"github.com/bnema/emergent-chefs/internal/adapters/render/console"
	tomlrepo "github.com/bnema/emergent-chefs/internal/adapters/repo/toml"
	"github.com/bnema/emergent-chefs/internal/application"
	"github.com/bnema/emergent-chefs/internal/config"
	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runOptions struct {
	turns     int
	seed      int64
	export    string
	noPause   bool
	plain     bool
	frequency bool
}

func newRunCmd(app *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the chef collaboration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *app.cfg
			if cmd.Flags().Changed("turns") {
				cfg.Run.Turns = opts.turns
			}
			if cmd.Flags().Changed("seed") {
				cfg.Run.Seed = opts.seed
			}
			if cmd.Flags().Changed("export") {
				cfg.Export.Path = opts.export
			}
			if errs := cfg.Validate(); len(errs) > 0 {
				return config.ValidationErrors(errs)
			}

			return runCollaboration(cmd, app, &cfg, opts)
		},
	}

	cmd.Flags().IntVar(&opts.turns, "turns", 0, "Total number of turns (default from config)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for vocabulary evolution (0 picks one at random)")
	cmd.Flags().StringVar(&opts.export, "export", "", "Write a TOML run report to this path")
	cmd.Flags().BoolVar(&opts.noPause, "no-pause", false, "Skip the pacing delays between turns")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Plain output: no colors and no spinner")
	cmd.Flags().BoolVar(&opts.frequency, "show-frequency", false, "Show shorthand frequencies in status reports")

	return cmd
}

func runCollaboration(cmd *cobra.Command, app *app, cfg *config.Config, opts runOptions) error {
	ctx := cmd.Context()
	runID := uuid.NewString()
	logger := app.logger.With(zap.String("run_id", runID))

	apiKey, err := app.credentials.APIKey(ctx)
	if err != nil {
		logger.Warn("provider api key not found, continuing without one",
			zap.String("env", cfg.Provider.APIKeyEnv),
			zap.Error(err),
		)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is not set and no key is stored; requests may be rejected\n", cfg.Provider.APIKeyEnv)
	}

	var generator ports.Generator = openrouter.NewGenerator(openrouter.Config{
		APIKey:  apiKey,
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.Provider.Timeout,
	})
	if !opts.plain {
		generator = newSpinnerGenerator(generator, cmd.ErrOrStderr())
	}

	reporter := console.NewReporter(cmd.OutOrStdout(), app.clock, console.Options{
		Plain:         opts.plain,
		ShowFrequency: opts.frequency,
	})

	state, err := application.NewState(runID, cfg.Roster())
	if err != nil {
		return err
	}

	evolver := domain.NewEvolver(nil)
	if cfg.Run.Seed != 0 {
		evolver = domain.NewSeededEvolver(uint64(cfg.Run.Seed))
	}

	settings := cfg.Settings()
	if opts.noPause {
		settings.Pause = 0
		settings.LongPause = 0
	}

	sessionOpts := []application.Option{
		application.WithLogger(app.logger),
		application.WithClock(app.clock),
	}

	var store *tomlrepo.ReportStore
	if cfg.Export.Path != "" {
		store, err = tomlrepo.NewReportStore(cfg.Export.Path)
		if err != nil {
			return fmt.Errorf("wire report store: %w", err)
		}
		sessionOpts = append(sessionOpts, application.WithSnapshotStore(store))
	}

	logger.Info("run starting",
		zap.Int("turns", settings.TotalTurns),
		zap.Int("agents", len(state.Agents)),
		zap.Int64("seed", cfg.Run.Seed),
	)

	session := application.NewSession(generator, reporter, evolver, settings, sessionOpts...)
	if _, err := session.Run(ctx, state); err != nil {
		return err
	}

	if store != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Run report written to %s\n", store.Path())
	}

	return nil
}
