package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"remuxer/internal/history"
	"remuxer/internal/logging"
	"remuxer/internal/remux"
	"remuxer/internal/services"
)

// DefaultPageSize is the catalog page size when none is configured.
const DefaultPageSize = 100

// Processor runs the pipeline for one container.
type Processor interface {
	Process(ctx context.Context, path string) (remux.Result, error)
	Plan(ctx context.Context, path string) (remux.Plan, error)
}

// Ledger remembers processed files between scans.
type Ledger interface {
	Lookup(ctx context.Context, path string) (history.Entry, bool, error)
	Record(ctx context.Context, entry history.Entry) error
}

// ProgressFunc receives the scan progress as a percentage in [0, 100].
type ProgressFunc func(percent float64)

// Options configures a Scanner.
type Options struct {
	PageSize int
	// Force reprocesses files the ledger already settled.
	Force bool
	// DryRun plans every file without running any stage.
	DryRun bool
	Logger *slog.Logger
}

// Summary reports what a scan did.
type Summary struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Remuxed   int           `json:"remuxed"`
	Unchanged int           `json:"unchanged"`
	Failed    int           `json:"failed"`
	Invalid   int           `json:"invalid"`
	Planned   int           `json:"planned"`
	Cancelled bool          `json:"cancelled"`
	Duration  time.Duration `json:"duration"`
}

// Scanner processes a catalog sequentially.
type Scanner struct {
	catalog   Catalog
	processor Processor
	ledger    Ledger
	opts      Options
	logger    *slog.Logger
	sampler   *logging.ProgressSampler
}

// NewScanner constructs a Scanner. ledger may be nil.
func NewScanner(catalog Catalog, processor Processor, ledger Ledger, opts Options) *Scanner {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Scanner{
		catalog:   catalog,
		processor: processor,
		ledger:    ledger,
		opts:      opts,
		logger:    logging.NewComponentLogger(opts.Logger, "scan"),
		sampler:   logging.NewProgressSampler(10),
	}
}

// Run walks the catalog page by page. Cancellation is only observed between
// files; a file that has started is always finished. Per-file failures are
// logged and recorded, never returned.
func (s *Scanner) Run(ctx context.Context, progress ProgressFunc) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString()}
	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, s.logger)
	s.sampler.Reset()
	report := func(percent float64) {
		if progress != nil {
			progress(percent)
		}
		if s.sampler.ShouldLog(percent) {
			logger.Info("scan progress", logging.Float64("percent", percent))
		}
	}

	total, err := s.catalog.Count(ctx)
	if err != nil {
		return summary, fmt.Errorf("count library items: %w", err)
	}
	summary.Total = total
	logger.Info("scan started",
		logging.String(logging.FieldEventType, "scan_started"),
		logging.Int("items", total),
		logging.Bool("force", s.opts.Force),
		logging.Bool("dry_run", s.opts.DryRun),
	)

	done := 0
	for offset := 0; offset < total; offset += s.opts.PageSize {
		items, err := s.catalog.List(ctx, offset, s.opts.PageSize)
		if err != nil {
			return summary, fmt.Errorf("list library items at %d: %w", offset, err)
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				summary.Cancelled = true
				summary.Duration = time.Since(start)
				logger.Info("scan cancelled",
					logging.String(logging.FieldEventType, "scan_cancelled"),
					logging.Int("completed", done),
					logging.Int("items", total),
				)
				return summary, err
			}
			if isMatroska(item.Container) {
				s.processItem(ctx, item, &summary)
			} else {
				summary.Skipped++
			}
			done++
			report(100 * float64(done) / float64(total))
		}
	}
	report(100)

	summary.Duration = time.Since(start)
	logger.Info("scan finished",
		logging.String(logging.FieldEventType, "scan_finished"),
		logging.Int("items", total),
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("remuxed", summary.Remuxed),
		logging.Int("failed", summary.Failed),
		logging.Int("invalid", summary.Invalid),
		logging.Duration("elapsed", summary.Duration),
	)
	return summary, nil
}

func isMatroska(container string) bool {
	return strings.Contains(strings.ToLower(container), "mkv")
}

func (s *Scanner) processItem(ctx context.Context, item Item, summary *Summary) {
	ctx = services.WithFile(ctx, item.Path)
	logger := logging.WithContext(ctx, s.logger)

	info, statErr := os.Stat(item.Path)
	if statErr != nil {
		logging.WarnWithContext(logger, "library item vanished", "item_missing",
			logging.Error(statErr),
			logging.String(logging.FieldImpact, "file skipped"),
		)
		summary.Skipped++
		return
	}

	if s.opts.DryRun {
		s.planItem(ctx, logger, item, summary)
		return
	}

	if !s.opts.Force && s.ledger != nil {
		entry, ok, err := s.ledger.Lookup(ctx, item.Path)
		if err != nil {
			logging.WarnWithContext(logger, "history lookup failed", "history_lookup_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "file processed without history check"),
			)
		} else if ok && entry.Status.Settled() && entry.Matches(info.Size(), info.ModTime()) {
			logger.Debug("file unchanged since last run",
				logging.String("status", string(entry.Status)),
				logging.String("processed_at", entry.ProcessedAt.Format(time.RFC3339)),
			)
			summary.Skipped++
			return
		}
	}

	result, err := s.processor.Process(ctx, item.Path)
	summary.Processed++
	if err != nil {
		logging.WarnWithContext(logger, "container could not be processed", "session_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, errorHint(err)),
			logging.String(logging.FieldImpact, "file left untouched"),
		)
	}
	switch result.Outcome {
	case history.StatusRemuxed:
		summary.Remuxed++
	case history.StatusUnchanged:
		summary.Unchanged++
	case history.StatusInvalid:
		summary.Invalid++
	default:
		summary.Failed++
	}
	s.record(ctx, logger, item, result)
}

func (s *Scanner) planItem(ctx context.Context, logger *slog.Logger, item Item, summary *Summary) {
	plan, err := s.processor.Plan(ctx, item.Path)
	if err != nil {
		logging.WarnWithContext(logger, "container could not be planned", "plan_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, errorHint(err)),
			logging.String(logging.FieldImpact, "file would be skipped"),
		)
		summary.Invalid++
		return
	}
	summary.Planned++
	logger.Info("planned",
		logging.String(logging.FieldEventType, "plan"),
		logging.Bool("needs_work", plan.NeedsWork()),
		logging.Int("strip", len(plan.Sets.Strip)),
		logging.Int("extract", len(plan.Sets.Extract)),
		logging.Int("ocr", len(plan.Sets.OCR)),
		logging.Int("detach", len(plan.Detached)),
	)
}

// record stores the outcome keyed by the file's state after the session, so
// the next scan recognises the file as settled.
func (s *Scanner) record(ctx context.Context, logger *slog.Logger, item Item, result remux.Result) {
	if s.ledger == nil {
		return
	}
	entry := history.Entry{
		Path:      item.Path,
		Status:    result.Outcome,
		Detail:    result.Detail,
		RunID:     summaryRunID(ctx),
		Stripped:  result.Stripped,
		Extracted: result.Extracted,
		OCR:       result.OCR,
		Merged:    result.Merged,
	}
	if info, err := os.Stat(item.Path); err == nil {
		entry.SizeBytes = info.Size()
		entry.ModTime = info.ModTime()
	}
	if err := s.ledger.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logger, "failed to record history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check state_dir permissions"),
			logging.String(logging.FieldImpact, "file will be processed again on the next scan"),
		)
	}
}

func summaryRunID(ctx context.Context) string {
	id, _ := services.RunIDFromContext(ctx)
	return id
}

func errorHint(err error) string {
	if errors.Is(err, remux.ErrWorkAreaUnavailable) {
		return "check write permissions on the container's directory"
	}
	return services.Hint(err)
}
