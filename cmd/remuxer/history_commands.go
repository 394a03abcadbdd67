package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"remuxer/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show processed files recorded in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				if entries == nil {
					entries = []history.Entry{}
				}
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No files recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print entries as JSON")

	cmd.AddCommand(newHistoryClearCommand(ctx))
	cmd.AddCommand(newHistoryForgetCommand(ctx))
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every ledger entry so the next scan revisits all files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d history entries\n", removed)
			return nil
		},
	}
}

func newHistoryForgetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "forget FILE...",
		Short: "Remove ledger entries for specific files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandArgs(args, nil)
			if err != nil {
				return err
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			for _, file := range files {
				removed, err := store.Remove(cmd.Context(), file)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(out, "Forgot %s\n", file)
				} else {
					fmt.Fprintf(out, "No entry for %s\n", file)
				}
			}
			return nil
		},
	}
}

func renderHistory(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			humanize.Time(e.ProcessedAt),
			string(e.Status),
			fmt.Sprintf("%d", e.Stripped),
			fmt.Sprintf("%d", e.Extracted),
			fmt.Sprintf("%d", e.OCR),
			fmt.Sprintf("%d", e.Merged),
			formatBytes(e.SizeBytes),
			e.Path,
		})
	}
	return renderTable(
		[]string{"Processed", "Status", "Strip", "Extract", "OCR", "Merge", "Size", "Path"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}
