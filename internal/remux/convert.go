package remux

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"remuxer/internal/fileutil"
	"remuxer/internal/logging"
	"remuxer/internal/media/ocr"
	"remuxer/internal/tracks"
)

type conversion struct {
	ok     bool
	output string
}

// convert runs one OCR conversion per OCR entry concurrently and waits for
// all of them. Successful conversions point the track at the new SubRip
// file and, when no extraction mode is set, queue it for merging. Any
// dropped conversion marks the session failed so the next scan retries it.
func (p *Processor) convert(ctx context.Context, s *Session) {
	if len(s.Sets.OCR) == 0 {
		return
	}
	ctx, logger := p.stageContext(ctx, "ocr")

	outcomes := make([]conversion, len(s.Sets.OCR))
	var g errgroup.Group
	if p.ocrParallel > 0 {
		g.SetLimit(p.ocrParallel)
	}
	for i, t := range s.Sets.OCR {
		g.Go(func() error {
			outcomes[i] = p.convertOne(ctx, logger, t)
			return nil
		})
	}
	_ = g.Wait()

	s.converted = make(map[int]string, len(outcomes))
	dropped := 0
	for i, outcome := range outcomes {
		if !outcome.ok {
			dropped++
			continue
		}
		t := s.Sets.OCR[i]
		s.converted[t.ID] = t.FilePath
		t.FilePath = outcome.output
		s.Sets.OCR[i] = t
		if p.policy.MergesOCROutput() {
			s.Sets.Merge = append(s.Sets.Merge, t)
		}
	}

	logger.Info("ocr finished",
		logging.String(logging.FieldEventType, "ocr_complete"),
		logging.Int("requested", len(s.Sets.OCR)),
		logging.Int("converted", len(s.converted)),
		logging.Int("queued_for_merge", len(s.Sets.Merge)),
	)
	if dropped > 0 {
		s.result.fail(fmt.Sprintf("ocr failed for %d of %d tracks", dropped, len(outcomes)))
	}
}

func (p *Processor) convertOne(ctx context.Context, logger *slog.Logger, t tracks.Track) conversion {
	logger = logger.With(logging.Int(logging.FieldTrackID, t.ID))
	if !t.Materialized() || !fileutil.FileExists(t.FilePath) {
		logging.WarnWithContext(logger, "ocr input missing", "ocr_input_missing",
			logging.String("input", t.FilePath),
			logging.String(logging.FieldErrorHint, "check the extraction warning for this container"),
			logging.String(logging.FieldImpact, "subtitle track was not converted"),
		)
		return conversion{}
	}

	res, err := p.runTool(ctx, p.tools.OCR, ocr.ConvertArgs(t.FilePath)...)
	if err != nil || !res.Succeeded() {
		attrs := []logging.Attr{
			logging.String("input", t.FilePath),
			logging.String(logging.FieldErrorHint, "verify the OCR converter runs headless"),
			logging.String(logging.FieldImpact, "subtitle track was not converted"),
		}
		attrs = append(attrs, logging.ToolOutput(res.ExitCode, res.Stdout, res.Stderr, err)...)
		logging.WarnWithContext(logger, "ocr conversion failed", "ocr_failed", attrs...)
		return conversion{}
	}

	output := ocr.OutputPath(t.FilePath)
	if !fileutil.FileExists(output) {
		logging.WarnWithContext(logger, "ocr reported success without output", "ocr_output_missing",
			logging.String("input", t.FilePath),
			logging.String("expected_output", output),
			logging.String(logging.FieldErrorHint, "check the converter writes SubRip beside its input"),
			logging.String(logging.FieldImpact, "subtitle track was not converted"),
		)
		return conversion{}
	}
	logger.Debug("subtitle converted",
		logging.String("output", output),
		logging.Duration("elapsed", res.Duration),
	)
	return conversion{ok: true, output: output}
}
