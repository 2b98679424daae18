package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/backend"
	"github.com/pablasso/hobbytrack/internal/config"
	"github.com/pablasso/hobbytrack/internal/logging"
	"github.com/pablasso/hobbytrack/internal/tui"
	"github.com/pablasso/hobbytrack/internal/version"
	"github.com/pablasso/hobbytrack/internal/wizard"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	backendURL string
	verbose    bool
}

// runtime is what PersistentPreRunE prepares for the command being run.
type runtime struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:   "hobbytrack",
		Short: "Goal-first hobby tracker",
		Long: `hobbytrack starts from what you want to achieve. Write a goal, pick one of
the suggested hobbies or create your own, and the goal is filed under it.

Run without arguments to start the interactive wizard.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if flags.backendURL != "" {
				cfg.Backend.BaseURL = flags.backendURL
			}

			logger, err := logging.New(cfg.Logging, flags.verbose)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.configPath = flags.configPath
			rt.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, rt)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultPath, "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&flags.backendURL, "backend", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(rt),
		newHobbiesCmd(rt),
		newConfigCmd(rt),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// runInteractive launches the TUI wizard against the configured backend.
func runInteractive(cmd *cobra.Command, rt *runtime) error {
	client := backend.NewClient(rt.cfg.Backend.BaseURL, rt.cfg.BackendTimeout())
	if err := checkBackend(cmd.Context(), client); err != nil {
		// Suggestions degrade to an empty list; the wizard still works.
		rt.logger.Warn("backend unavailable", zap.String("base_url", client.Base), zap.Error(err))
	}

	ctrl := newController(rt.cfg, client, rt.logger)
	defer ctrl.Close()

	rt.logger.Info("wizard started", zap.String("backend", client.Base), zap.String("commit_mode", string(rt.cfg.CommitMode)))
	return tui.Run(tui.Options{
		Controller: ctrl,
		Backend:    client.Base,
		Logger:     rt.logger,
	})
}

func newController(cfg *config.Config, client *backend.Client, logger *zap.Logger) *wizard.Controller {
	return wizard.New(wizard.Options{
		Source:       client,
		Committer:    newCommitter(cfg.CommitMode, client, logger),
		Logger:       logger,
		StatusTTL:    cfg.StatusTTL(),
		FetchTimeout: cfg.FetchTimeout(),
	})
}

func newCommitter(mode config.CommitMode, client *backend.Client, logger *zap.Logger) wizard.Committer {
	if mode == config.CommitHTTP {
		return backend.NewHTTPCommitter(client, logger)
	}
	return backend.LogCommitter{Logger: logger}
}
