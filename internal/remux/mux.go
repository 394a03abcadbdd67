package remux

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"remuxer/internal/fileutil"
	"remuxer/internal/history"
	"remuxer/internal/logging"
	"remuxer/internal/media/mkvmerge"
	"remuxer/internal/preflight"
	"remuxer/internal/tracks"
)

// remux rebuilds the container in the scratch directory and commits it over
// the original. Nothing happens when no track is removed and nothing is
// merged. The original is only replaced after mkvmerge reports completion.
func (p *Processor) remux(ctx context.Context, s *Session) {
	removeAudio := s.Sets.StripIDs(tracks.Audio)
	removeSubs := s.removedSubtitleIDs(p.policy)
	merge := s.mergePaths()
	if len(removeAudio) == 0 && len(removeSubs) == 0 && len(merge) == 0 {
		return
	}
	ctx, logger := p.stageContext(ctx, "remux")

	info, err := os.Stat(s.Path)
	if err != nil {
		logging.WarnWithContext(logger, "container disappeared before remux", "remux_source_missing",
			logging.Error(err),
			logging.String(logging.FieldImpact, "container was not rebuilt"),
		)
		s.result.fail("container missing before remux")
		return
	}

	if p.checkFreeSpace {
		need := uint64(info.Size())
		for _, path := range merge {
			if fi, err := os.Stat(path); err == nil {
				need += uint64(fi.Size())
			}
		}
		if check := preflight.CheckFreeSpace("scratch", s.ScratchDir, need); !check.Passed {
			logging.WarnWithContext(logger, "not enough free space to rebuild container", "remux_no_space",
				logging.String("detail", check.Detail),
				logging.String(logging.FieldErrorHint, "free space on the library volume"),
				logging.String(logging.FieldImpact, "container was not rebuilt"),
			)
			s.result.fail("insufficient free space")
			return
		}
	}

	output := filepath.Join(s.ScratchDir, filepath.Base(s.Path))
	req := mkvmerge.MuxRequest{
		Output:           output,
		Input:            s.Path,
		ExcludeAudio:     removeAudio,
		ExcludeSubtitles: removeSubs,
		Append:           merge,
	}
	res, err := p.runTool(ctx, p.tools.MkvMerge, mkvmerge.MuxArgs(req)...)
	if err != nil || !mkvmerge.MuxSucceeded(res.ExitCode, res.Stdout) {
		detail := fmt.Sprintf("mkvmerge exit status %d", res.ExitCode)
		if err == nil && res.ExitCode == 0 {
			detail = "mkvmerge finished without completion marker"
		}
		attrs := []logging.Attr{
			logging.String("detail", detail),
			logging.String(logging.FieldErrorHint, "run the mkvmerge command manually to inspect the failure"),
			logging.String(logging.FieldImpact, "original container left untouched"),
		}
		attrs = append(attrs, logging.ToolOutput(res.ExitCode, res.Stdout, res.Stderr, err)...)
		logging.WarnWithContext(logger, "remux failed", "remux_failed", attrs...)
		removeFile(logger, output)
		s.result.fail(detail)
		return
	}

	if err := fileutil.MoveFile(output, s.Path, info.Mode().Perm()); err != nil {
		logging.WarnWithContext(logger, "failed to commit rebuilt container", "commit_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check library volume permissions and free space"),
			logging.String(logging.FieldImpact, "original container left in place"),
		)
		removeFile(logger, output)
		s.result.fail("commit failed")
		return
	}
	s.committed = true
	s.result.Committed = true
	if s.result.Outcome != history.StatusFailed {
		s.result.Outcome = history.StatusRemuxed
	}
	logger.Info("container rebuilt",
		logging.String(logging.FieldEventType, "remux_complete"),
		logging.String("removed_audio", joinInts(removeAudio)),
		logging.String("removed_subtitles", joinInts(removeSubs)),
		logging.Int("merged", len(merge)),
		logging.Duration("elapsed", res.Duration),
	)

	inv, err := p.Classify(ctx, s.Path)
	if err != nil {
		logging.WarnWithContext(logger, "re-probe after commit failed", "reprobe_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "summary reflects the pre-remux inventory"),
		)
		return
	}
	s.Inventory = inv
}

func joinInts(ids []int) string {
	list := make([]tracks.Track, 0, len(ids))
	for _, id := range ids {
		list = append(list, tracks.Track{ID: id})
	}
	return joinTrackIDs(list)
}
