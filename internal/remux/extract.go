package remux

import (
	"context"
	"path/filepath"

	"remuxer/internal/logging"
	"remuxer/internal/media/mkvextract"
	"remuxer/internal/tracks"
)

// extract demuxes every track the later stages need from the container in a
// single mkvextract call. A failing call marks the session failed and removes
// whatever it wrote; the stages that depend on the missing files skip them.
func (p *Processor) extract(ctx context.Context, s *Session) {
	targets := s.Sets.ExtractionTargets()
	if len(targets) == 0 {
		return
	}
	ctx, logger := p.stageContext(ctx, "extract")

	base := tracks.ContainerBase(s.Path)
	s.demuxed = make(map[int]string, len(targets))
	reqs := make([]mkvextract.Target, 0, len(targets))
	for _, t := range targets {
		out := filepath.Join(s.ScratchDir, tracks.SidecarFileNameFor(base, t))
		s.demuxed[t.ID] = out
		reqs = append(reqs, mkvextract.Target{TrackID: t.ID, Output: out})
	}
	for i, t := range s.Sets.Extract {
		if out, ok := s.demuxed[t.ID]; ok {
			s.Sets.Extract[i].FilePath = out
		}
	}
	for i, t := range s.Sets.OCR {
		if t.Materialized() {
			continue
		}
		if out, ok := s.demuxed[t.ID]; ok {
			s.Sets.OCR[i].FilePath = out
		}
	}

	logger.Debug("extracting tracks",
		logging.String("track_ids", joinTrackIDs(targets)),
		logging.String("scratch_dir", s.ScratchDir),
	)
	res, err := p.runTool(ctx, p.tools.MkvExtract, mkvextract.TracksArgs(s.Path, reqs)...)
	if err != nil || !res.Succeeded() {
		attrs := []logging.Attr{
			logging.String(logging.FieldErrorHint, "run mkvextract manually against the container"),
			logging.String(logging.FieldImpact, "requested sidecars were not produced"),
		}
		attrs = append(attrs, logging.ToolOutput(res.ExitCode, res.Stdout, res.Stderr, err)...)
		logging.WarnWithContext(logger, "track extraction failed", "extract_failed", attrs...)
		for _, req := range reqs {
			removeFile(logger, req.Output)
		}
		s.result.fail(toolFailureDetail("mkvextract", res.ExitCode, err))
		return
	}
	s.extracted = true
	logger.Info("tracks extracted",
		logging.String(logging.FieldEventType, "extract_complete"),
		logging.Int("tracks", len(reqs)),
		logging.Duration("elapsed", res.Duration),
	)
}
