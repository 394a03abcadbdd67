package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"remuxer/internal/config"
	"remuxer/internal/deps"
	"remuxer/internal/library"
	"remuxer/internal/preflight"
	"remuxer/internal/remux"
	"remuxer/internal/staging"
)

type runOptions struct {
	force    bool
	dryRun   bool
	jsonOut  bool
	roots    []string
	catalog  library.Catalog
	sweepAge time.Duration
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var force, dryRun, jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan [ROOT...]",
		Short: "Process every Matroska file under the library roots",
		Long: "Scan walks the configured library roots (or the roots given as arguments)\n" +
			"and runs the strip, extract, OCR and remux pipeline on every Matroska file\n" +
			"whose size or modification time changed since it was last processed.",
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
			return runLibrary(cmd, ctx, runOptions{
				force:    force,
				dryRun:   dryRun,
				jsonOut:  jsonOut,
				roots:    roots,
				catalog:  library.NewFSCatalog(roots, cfg.Library.Extensions),
				sweepAge: time.Duration(cfg.Workflow.StaleScratchHours) * time.Hour,
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reprocess files already recorded as settled")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan every file without changing anything")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the scan summary as JSON")
	return cmd
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var dryRun, jsonOut bool

	cmd := &cobra.Command{
		Use:   "process FILE...",
		Short: "Run the pipeline on specific files",
		Long:  "Process runs the pipeline on each file regardless of what the history ledger recorded.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandArgs(args, nil)
			if err != nil {
				return err
			}
			catalog := make(library.StaticCatalog, 0, len(files))
			for _, file := range files {
				catalog = append(catalog, library.ItemForPath(file))
			}
			return runLibrary(cmd, ctx, runOptions{
				force:   true,
				dryRun:  dryRun,
				jsonOut: jsonOut,
				catalog: catalog,
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan the files without changing anything")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the summary as JSON")
	return cmd
}

// runLibrary performs the checks shared by scan and process, takes the scan
// lock and drives a library.Scanner over the catalog.
func runLibrary(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	if err := checkEnvironment(runCtx, cfg, opts.roots); err != nil {
		return err
	}

	lock, err := library.AcquireScanLock(cfg.ScanLockPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	if opts.sweepAge > 0 && !opts.dryRun {
		staging.CleanStale(runCtx, opts.roots, opts.sweepAge, logger)
	}

	store, err := ctx.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	proc, err := remux.NewProcessorFromConfig(cfg, ctx.runner, logger)
	if err != nil {
		return err
	}

	scanner := library.NewScanner(opts.catalog, proc, store, library.Options{
		PageSize: cfg.Library.PageSize,
		Force:    opts.force,
		DryRun:   opts.dryRun,
		Logger:   logger,
	})

	out := cmd.OutOrStdout()
	var progress library.ProgressFunc
	if !opts.jsonOut && shouldColorize(out) {
		progress = func(percent float64) {
			fmt.Fprintf(out, "\rProgress: %5.1f%%", percent)
		}
	}

	summary, runErr := scanner.Run(runCtx, progress)
	if progress != nil {
		fmt.Fprintln(out)
	}
	if opts.jsonOut {
		if err := writeJSON(cmd, summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, renderSummary(summary))
	}
	return runErr
}

func checkEnvironment(ctx context.Context, cfg *config.Config, roots []string) error {
	checks := []preflight.Result{
		preflight.CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
	}
	for _, root := range roots {
		checks = append(checks, preflight.CheckDirectoryAccess("Library root", root))
	}
	if failed := preflight.Failed(checks); len(failed) > 0 {
		parts := make([]string, 0, len(failed))
		for _, r := range failed {
			parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(parts, "; "))
	}

	missing := deps.Missing(deps.CheckBinaries(preflight.ToolRequirements(cfg)))
	if len(missing) > 0 {
		parts := make([]string, 0, len(missing))
		for _, m := range missing {
			parts = append(parts, fmt.Sprintf("%s (%s)", m.Name, m.Detail))
		}
		return fmt.Errorf("required tools unavailable: %s", strings.Join(parts, ", "))
	}
	return ctx.Err()
}

func renderSummary(s library.Summary) string {
	pairs := [][2]string{
		{"Run", s.RunID},
		{"Files", fmt.Sprintf("%d", s.Total)},
		{"Processed", fmt.Sprintf("%d", s.Processed)},
		{"Skipped", fmt.Sprintf("%d", s.Skipped)},
	}
	if s.Planned > 0 {
		pairs = append(pairs, [2]string{"Planned", fmt.Sprintf("%d", s.Planned)})
	} else {
		pairs = append(pairs,
			[2]string{"Remuxed", fmt.Sprintf("%d", s.Remuxed)},
			[2]string{"Unchanged", fmt.Sprintf("%d", s.Unchanged)},
			[2]string{"Failed", fmt.Sprintf("%d", s.Failed)},
			[2]string{"Invalid", fmt.Sprintf("%d", s.Invalid)},
		)
	}
	pairs = append(pairs, [2]string{"Elapsed", s.Duration.Round(time.Millisecond).String()})
	if s.Cancelled {
		pairs = append(pairs, [2]string{"Cancelled", yesNo(true)})
	}
	return renderKeyValues(pairs)
}

func formatBytes(n int64) string {
	if n < 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}
