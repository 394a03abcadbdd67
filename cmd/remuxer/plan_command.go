package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"remuxer/internal/language"
	"remuxer/internal/remux"
	"remuxer/internal/tracks"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "plan FILE",
		Short: "Show what the pipeline would do to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			files, err := expandArgs(args, nil)
			if err != nil {
				return err
			}
			proc, err := remux.NewProcessorFromConfig(cfg, ctx.runner, logger)
			if err != nil {
				return err
			}
			plan, err := proc.Plan(cmd.Context(), files[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, plan)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderPlan(plan))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the plan as JSON")
	return cmd
}

func renderPlan(plan remux.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", plan.Inventory.Path)

	actions := planActions(plan)
	rows := make([][]string, 0, len(plan.Inventory.Tracks))
	for _, t := range plan.Inventory.Tracks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			string(t.Kind),
			t.Codec,
			languageLabel(t.Language),
			t.Name,
			trackFlags(t),
			actionLabel(actions[t.ID]),
		})
	}
	b.WriteString(renderTable(
		[]string{"ID", "Kind", "Codec", "Lang", "Name", "Flags", "Action"},
		rows,
		[]columnAlignment{alignRight},
	))
	b.WriteString("\n")

	if len(plan.Inventory.Sidecars) > 0 {
		sidecars := make([][]string, 0, len(plan.Inventory.Sidecars))
		for _, t := range plan.Inventory.Sidecars {
			sidecars = append(sidecars, []string{fmt.Sprintf("%d", t.ID), t.Language, t.Codec, t.FilePath})
		}
		b.WriteString("Sidecars:\n")
		b.WriteString(renderTable([]string{"ID", "Lang", "Format", "Path"}, sidecars, []columnAlignment{alignRight}))
		b.WriteString("\n")
	}

	if !plan.NeedsWork() {
		b.WriteString("Nothing to do.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Scratch: %s\n", plan.ScratchDir)
	return b.String()
}

// planActions maps each container track id to the stages that will touch it.
func planActions(plan remux.Plan) map[int][]string {
	actions := make(map[int][]string)
	add := func(list []tracks.Track, label string) {
		for _, t := range list {
			actions[t.ID] = append(actions[t.ID], label)
		}
	}
	add(plan.Sets.Strip, "strip")
	add(plan.Sets.Extract, "extract")
	add(plan.Sets.OCR, "ocr")
	add(plan.Sets.Merge, "merge")
	add(plan.Detached, "drop (sidecar exists)")
	return actions
}

func actionLabel(actions []string) string {
	if len(actions) == 0 {
		return "keep"
	}
	return strings.Join(actions, ", ")
}

func trackFlags(t tracks.Track) string {
	var flags []string
	if t.Default.IsTrue() {
		flags = append(flags, "default")
	}
	if t.Forced.IsTrue() {
		flags = append(flags, "forced")
	}
	if t.Original.IsTrue() {
		flags = append(flags, "original")
	}
	return strings.Join(flags, ",")
}

func languageLabel(tag string) string {
	name := language.DisplayName(tag)
	if name == tag || tag == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", tag, name)
}
