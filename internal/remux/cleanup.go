package remux

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"remuxer/internal/fileutil"
	"remuxer/internal/logging"
	"remuxer/internal/staging"
)

// cleanup settles every file the session produced: merged copies and OCR
// intermediates are deleted, surviving sidecars move beside the container,
// and the scratch directory is removed if it ended up empty.
func (p *Processor) cleanup(ctx context.Context, s *Session) {
	_, logger := p.stageContext(ctx, "cleanup")

	for _, t := range s.Sets.Merge {
		// A failed remux drops OCR output meant for merging so the next run
		// converts again instead of finding a stray text sidecar.
		if !s.committed || s.inScratch(t.FilePath) {
			removeFile(logger, t.FilePath)
		}
	}

	for _, t := range s.Sets.OCR {
		src, ok := s.demuxed[t.ID]
		if !ok || s.isExtractTarget(t.ID) {
			continue
		}
		if _, converted := s.converted[t.ID]; converted && src == t.FilePath {
			continue
		}
		removeFile(logger, src)
	}

	for _, t := range s.Sets.Extract {
		p.settleSidecar(logger, s, t.FilePath)
	}
	for _, t := range s.Sets.OCR {
		if _, converted := s.converted[t.ID]; !converted || s.isMerged(t.ID) {
			continue
		}
		p.settleSidecar(logger, s, t.FilePath)
	}

	if err := staging.Remove(s.ScratchDir); err != nil {
		logging.WarnWithContext(logger, "scratch directory not removed", "scratch_cleanup_failed",
			logging.String("scratch_dir", s.ScratchDir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run remuxer clean to sweep stale scratch directories"),
			logging.String(logging.FieldImpact, "scratch directory left beside the container"),
		)
	}
}

// settleSidecar moves a sidecar out of the scratch directory next to the
// container and records where it ended up.
func (p *Processor) settleSidecar(logger *slog.Logger, s *Session, path string) {
	if !fileutil.FileExists(path) {
		return
	}
	if !s.inScratch(path) {
		s.result.Sidecars = appendUnique(s.result.Sidecars, path)
		return
	}
	dst := filepath.Join(s.containerDir(), filepath.Base(path))
	if err := fileutil.MoveFile(path, dst, 0); err != nil {
		logging.WarnWithContext(logger, "failed to move sidecar beside container", "sidecar_move_failed",
			logging.String("source", path),
			logging.String("destination", dst),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check library directory permissions"),
			logging.String(logging.FieldImpact, "sidecar left in scratch directory"),
		)
		return
	}
	s.result.Sidecars = appendUnique(s.result.Sidecars, dst)
}

func removeFile(logger *slog.Logger, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.WarnWithContext(logger, "failed to remove intermediate file", "intermediate_cleanup_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "stray file left on disk"),
		)
	}
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
