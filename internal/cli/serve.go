package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/devserver"
	"github.com/pablasso/hobbytrack/internal/store"
)

type serveFlags struct {
	addr     string
	dataFile string
	noSeed   bool
}

func newServeCmd(rt *runtime) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local hobby backend",
		Long: `Serve the hobby REST API the wizard talks to. Without --data the catalog
lives in memory; with --data it is loaded from and saved to a JSON file,
which is locked while the server runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rt, flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().StringVar(&flags.dataFile, "data", "", "JSON file to persist the catalog in")
	cmd.Flags().BoolVar(&flags.noSeed, "no-seed", false, "Start with an empty catalog")
	return cmd
}

func runServe(cmd *cobra.Command, rt *runtime, flags *serveFlags) error {
	addr := flags.addr
	if addr == "" {
		addr = rt.cfg.Server.Addr
	}
	dataFile := flags.dataFile
	if dataFile == "" {
		dataFile = rt.cfg.Server.DataFile
	}

	opts := devserver.Options{Logger: rt.logger}
	if !flags.noSeed {
		opts.Seed = devserver.DefaultSeed()
	}

	if dataFile != "" {
		lock := store.NewLock(dataFile)
		if err := lock.Acquire(); err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				rt.logger.Warn("failed to release lock", zap.String("path", lock.Path()), zap.Error(err))
			}
		}()
		opts.Store = store.NewFileStore(dataFile)
	}

	srv, err := devserver.New(opts)
	if err != nil {
		return fmt.Errorf("failed to start backend: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving hobby API on %s\n", addr)
	if dataFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog file: %s\n", dataFile)
	}
	return srv.ListenAndServe(ctx, addr)
}
