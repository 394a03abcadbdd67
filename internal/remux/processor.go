package remux

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"remuxer/internal/config"
	"remuxer/internal/history"
	"remuxer/internal/logging"
	"remuxer/internal/media/mkvextract"
	"remuxer/internal/media/mkvmerge"
	"remuxer/internal/media/ocr"
	"remuxer/internal/policy"
	"remuxer/internal/services"
	"remuxer/internal/staging"
	"remuxer/internal/toolexec"
	"remuxer/internal/tracks"
)

// Tools names the external binaries a Processor invokes.
type Tools struct {
	MkvMerge   string
	MkvExtract string
	OCR        string
}

func (t Tools) withDefaults() Tools {
	if strings.TrimSpace(t.MkvMerge) == "" {
		t.MkvMerge = mkvmerge.DefaultBinary
	}
	if strings.TrimSpace(t.MkvExtract) == "" {
		t.MkvExtract = mkvextract.DefaultBinary
	}
	if strings.TrimSpace(t.OCR) == "" {
		t.OCR = ocr.DefaultBinary
	}
	return t
}

// Options configures a Processor.
type Options struct {
	Policy policy.Policy
	Tools  Tools
	// OCRParallel caps concurrent OCR conversions; 0 launches all at once.
	OCRParallel    int
	CheckFreeSpace bool
	Runner         toolexec.Runner
	Logger         *slog.Logger
}

// Processor runs sessions under one policy.
type Processor struct {
	policy         policy.Policy
	tools          Tools
	ocrParallel    int
	checkFreeSpace bool
	run            toolexec.Runner
	base           *slog.Logger
	logger         *slog.Logger
}

// NewProcessor constructs a Processor. A nil runner executes real binaries.
func NewProcessor(opts Options) *Processor {
	base := opts.Logger
	if base == nil {
		base = logging.NewNop()
	}
	runner := opts.Runner
	if runner == nil {
		runner = toolexec.ExecRunner{}
	}
	parallel := opts.OCRParallel
	if parallel < 0 {
		parallel = 0
	}
	return &Processor{
		policy:         opts.Policy,
		tools:          opts.Tools.withDefaults(),
		ocrParallel:    parallel,
		checkFreeSpace: opts.CheckFreeSpace,
		run:            runner,
		base:           base,
		logger:         logging.NewComponentLogger(base, "remux"),
	}
}

// NewProcessorFromConfig builds a Processor from the loaded configuration.
func NewProcessorFromConfig(cfg *config.Config, runner toolexec.Runner, logger *slog.Logger) (*Processor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	p, err := cfg.RemuxPolicy()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "policy", "invalid remux policy", err)
	}
	return NewProcessor(Options{
		Policy: p,
		Tools: Tools{
			MkvMerge:   cfg.Tools.MkvMerge,
			MkvExtract: cfg.Tools.MkvExtract,
			OCR:        cfg.Tools.OCR,
		},
		OCRParallel:    cfg.OCR.MaxParallel,
		CheckFreeSpace: cfg.Workflow.CheckFreeSpace,
		Runner:         runner,
		Logger:         logger,
	}), nil
}

// Policy returns the policy sessions run under.
func (p *Processor) Policy() policy.Policy {
	return p.policy
}

// Process runs the full pipeline for one container.
func (p *Processor) Process(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ctx = services.WithFile(ctx, path)
	logger := logging.WithContext(ctx, p.logger)
	result := Result{Path: path, Outcome: history.StatusUnchanged}

	inv, err := p.Classify(ctx, path)
	if err != nil {
		result.Outcome = services.FailureStatus(err)
		result.Detail = err.Error()
		return result, err
	}

	sets := policy.Decide(inv, p.policy)
	p.logDecision(logger, inv, sets)
	detached := policy.Detached(inv, p.policy)
	result.Stripped = len(sets.Strip)
	if sets.Empty() && len(detached) == 0 {
		logger.Info("nothing to do",
			logging.String(logging.FieldEventType, "session_noop"),
			logging.Int("tracks", len(inv.Tracks)),
			logging.Int("sidecars", len(inv.Sidecars)),
		)
		result.Duration = time.Since(start)
		return result, nil
	}

	scratch, err := staging.Ensure(path)
	if err != nil {
		err = sessionError(ErrWorkAreaUnavailable, services.ErrConfiguration,
			"staging", "create scratch dir", "cannot create working directory", err)
		result.Outcome = services.FailureStatus(err)
		result.Detail = err.Error()
		return result, err
	}

	s := &Session{
		Path:       path,
		ScratchDir: scratch,
		Inventory:  inv,
		Sets:       sets,
		detached:   detached,
		result:     &result,
	}

	p.extract(ctx, s)
	p.convert(ctx, s)
	p.remux(ctx, s)
	p.cleanup(ctx, s)

	result.Extracted = s.extractedCount()
	result.OCR = s.convertedCount()
	result.Merged = len(s.Sets.Merge)
	result.Duration = time.Since(start)

	logger.Info("session complete",
		logging.String(logging.FieldEventType, "session_complete"),
		logging.String("outcome", string(result.Outcome)),
		logging.Int("stripped", result.Stripped),
		logging.Int("extracted", result.Extracted),
		logging.Int("ocr", result.OCR),
		logging.Int("merged", result.Merged),
		logging.Int("sidecars", len(result.Sidecars)),
		logging.Duration("elapsed", result.Duration),
	)
	return result, nil
}

func (p *Processor) logDecision(logger *slog.Logger, inv tracks.Inventory, sets policy.WorkSets) {
	attrs := logging.DecisionAttrs("work_sets", decisionSummary(sets), "policy evaluation")
	attrs = append(attrs,
		logging.String(logging.FieldEventType, "decision"),
		logging.String("container", inv.Container),
		logging.Int("audio_tracks", inv.Count(tracks.Audio)),
		logging.Int("subtitle_tracks", inv.Count(tracks.Subtitle)),
		logging.Int("sidecars", len(inv.Sidecars)),
		logging.String("strip_ids", joinTrackIDs(sets.Strip)),
		logging.String("extract_ids", joinTrackIDs(sets.Extract)),
		logging.String("ocr_ids", joinTrackIDs(sets.OCR)),
	)
	logger.Debug("work sets decided", logging.Args(attrs...)...)
}

func decisionSummary(sets policy.WorkSets) string {
	if sets.Empty() {
		return "none"
	}
	return fmt.Sprintf("strip=%d extract=%d ocr=%d", len(sets.Strip), len(sets.Extract), len(sets.OCR))
}

func joinTrackIDs(list []tracks.Track) string {
	parts := make([]string, 0, len(list))
	for _, t := range list {
		parts = append(parts, fmt.Sprint(t.ID))
	}
	return strings.Join(parts, ",")
}

// stageContext annotates ctx with a stage and returns a matching logger.
func (p *Processor) stageContext(ctx context.Context, stage string) (context.Context, *slog.Logger) {
	ctx = services.WithStage(ctx, stage)
	return ctx, logging.WithContext(ctx, logging.NewComponentLogger(p.base, stage))
}

// runTool invokes a tool detached from cancellation so an in-flight call
// always runs to completion.
func (p *Processor) runTool(ctx context.Context, name string, args ...string) (toolexec.Result, error) {
	return p.run.Run(context.WithoutCancel(ctx), name, args...)
}
