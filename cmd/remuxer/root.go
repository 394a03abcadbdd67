package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"remuxer/internal/toolexec"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWith(toolexec.ExecRunner{}, nil)
}

// newRootCommandWith builds the command tree around an explicit tool runner.
// A nil logger makes the commands build one from the loaded config.
func newRootCommandWith(runner toolexec.Runner, logger *slog.Logger) *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag, runner, logger)

	rootCmd := &cobra.Command{
		Use:           "remuxer",
		Short:         "Strip, extract and OCR tracks in Matroska files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newProcessCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newCleanCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
