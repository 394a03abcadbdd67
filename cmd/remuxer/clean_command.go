package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"remuxer/internal/staging"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAge time.Duration
	var list bool

	cmd := &cobra.Command{
		Use:   "clean [ROOT...]",
		Short: "Remove scratch directories left behind by interrupted sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			roots, err := expandArgs(args, cfg.Library.Roots)
			if err != nil {
				return err
			}
			if len(roots) == 0 {
				return errors.New("no library roots configured; set library.roots or pass a root")
			}
			out := cmd.OutOrStdout()

			if list {
				dirs, err := staging.ListScratch(cmd.Context(), roots)
				if err != nil {
					return err
				}
				if len(dirs) == 0 {
					fmt.Fprintln(out, "No scratch directories found")
					return nil
				}
				rows := make([][]string, 0, len(dirs))
				for _, d := range dirs {
					rows = append(rows, []string{humanize.Time(d.ModTime), formatBytes(d.Size), d.Path})
				}
				fmt.Fprintln(out, renderTable([]string{"Modified", "Size", "Path"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			}

			if !cmd.Flags().Changed("max-age") {
				maxAge = time.Duration(cfg.Workflow.StaleScratchHours) * time.Hour
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			result := staging.CleanStale(cmd.Context(), roots, maxAge, logger)
			for _, path := range result.Removed {
				fmt.Fprintf(out, "Removed %s\n", path)
			}
			for _, failure := range result.Errors {
				fmt.Fprintf(out, "Failed %s: %v\n", failure.Path, failure.Error)
			}
			fmt.Fprintf(out, "Removed %d scratch directories\n", len(result.Removed))
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d scratch directories could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "Only remove directories older than this (default from workflow.stale_scratch_hours)")
	cmd.Flags().BoolVar(&list, "list", false, "List scratch directories without removing them")
	return cmd
}
