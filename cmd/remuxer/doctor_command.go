package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"remuxer/internal/deps"
	"remuxer/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check tools and directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			problems := 0

			fmt.Fprintln(out, renderSectionHeader("Tools", colorize))
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg, ctx.runner) {
				kind, message := dependencyStatus(status)
				if kind == statusError {
					problems++
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderSectionHeader("Directories", colorize))
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				message := result.Detail
				if !result.Passed {
					kind = statusError
					problems++
				} else if free, err := preflight.FreeBytes(result.Path); err == nil {
					message = fmt.Sprintf("%s (%s free)", message, humanize.Bytes(free))
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, message, colorize))
			}

			fmt.Fprintln(out)
			if problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}

func dependencyStatus(status deps.Status) (statusKind, string) {
	switch {
	case status.Available:
		message := status.Command
		if status.Version != "" {
			message = status.Version
		}
		return statusOK, message
	case status.Optional:
		return statusWarn, status.Detail
	default:
		return statusError, status.Detail
	}
}
