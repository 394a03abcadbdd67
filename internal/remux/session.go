package remux

import (
	"path/filepath"
	"strings"

	"remuxer/internal/fileutil"
	"remuxer/internal/policy"
	"remuxer/internal/tracks"
)

// Session is the state of one container while it moves through the pipeline.
// Inventory is replaced, never mutated, when the container changes on disk.
type Session struct {
	Path       string
	ScratchDir string
	Inventory  tracks.Inventory
	Sets       policy.WorkSets

	detached []tracks.Track
	// demuxed maps track ids to the files the extraction stage asked for.
	demuxed map[int]string
	// extracted is set only when mkvextract exited cleanly.
	extracted bool
	// converted maps track ids of successful OCR conversions to their input.
	converted map[int]string
	committed bool
	result    *Result
}

func (s *Session) inScratch(path string) bool {
	if path == "" {
		return false
	}
	rel, err := filepath.Rel(s.ScratchDir, path)
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}

func (s *Session) containerDir() string {
	return filepath.Dir(s.Path)
}

func (s *Session) isExtractTarget(id int) bool {
	for _, t := range s.Sets.Extract {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) isMerged(id int) bool {
	for _, t := range s.Sets.Merge {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) extractedCount() int {
	if !s.extracted {
		return 0
	}
	n := 0
	for _, t := range s.Sets.Extract {
		if path, ok := s.demuxed[t.ID]; ok && path == t.FilePath {
			n++
		}
	}
	return n
}

func (s *Session) convertedCount() int {
	return len(s.converted)
}

// removedSubtitleIDs returns the subtitle ids the rebuilt container leaves
// out: stripped tracks plus, in extract_remux mode, detached tracks and the
// tracks of a clean extraction whose sidecar exists.
func (s *Session) removedSubtitleIDs(p policy.Policy) []int {
	ids := s.Sets.StripIDs(tracks.Subtitle)
	if p.ExtractMode != policy.ExtractAndRemux {
		return ids
	}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	add := func(id int) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if s.extracted {
		for _, t := range s.Sets.Extract {
			if fileutil.FileExists(t.FilePath) {
				add(t.ID)
			}
		}
	}
	for _, t := range s.detached {
		add(t.ID)
	}
	return ids
}

func (s *Session) mergePaths() []string {
	paths := make([]string, 0, len(s.Sets.Merge))
	for _, t := range s.Sets.Merge {
		paths = append(paths, t.FilePath)
	}
	return paths
}
