package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConfigCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigInitCmd(rt), newConfigShowCmd(rt))
	return cmd
}

func newConfigInitCmd(rt *runtime) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to --config",
		Long: `Write the configuration currently in effect (defaults, the existing file,
environment overrides and --backend) to the --config path so it can be edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(rt.configPath); err == nil {
					return fmt.Errorf("config file %s already exists (use --force to overwrite)", rt.configPath)
				}
			}
			if err := rt.cfg.Save(rt.configPath); err != nil {
				return err
			}
			rt.logger.Info("config written", zap.String("path", rt.configPath))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", rt.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := rt.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
