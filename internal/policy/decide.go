package policy

import "remuxer/internal/tracks"

// WorkSets is the output of Decide. Each set keeps inventory order.
type WorkSets struct {
	Strip   []tracks.Track `json:"strip"`
	Extract []tracks.Track `json:"extract"`
	OCR     []tracks.Track `json:"ocr"`
	Merge   []tracks.Track `json:"merge"`
}

// Empty reports whether there is no work at all.
func (w WorkSets) Empty() bool {
	return len(w.Strip) == 0 && len(w.Extract) == 0 && len(w.OCR) == 0 && len(w.Merge) == 0
}

// StripIDs returns the ids of stripped tracks of one kind.
func (w WorkSets) StripIDs(kind tracks.Kind) []int {
	var ids []int
	for _, t := range w.Strip {
		if t.Kind == kind {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// ExtractionTargets returns the container tracks the demux call must cover:
// every Extract entry plus OCR entries not yet on disk, each id once.
func (w WorkSets) ExtractionTargets() []tracks.Track {
	seen := make(map[int]struct{}, len(w.Extract)+len(w.OCR))
	var out []tracks.Track
	add := func(t tracks.Track) {
		if _, ok := seen[t.ID]; ok {
			return
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	for _, t := range w.Extract {
		add(t)
	}
	for _, t := range w.OCR {
		if t.Materialized() {
			continue
		}
		add(t)
	}
	return out
}

// Decide evaluates the policy against every container track and discovered
// sidecar.
func Decide(inv tracks.Inventory, p Policy) WorkSets {
	var sets WorkSets
	for _, t := range inv.Tracks {
		if shouldStrip(t, p) {
			sets.Strip = append(sets.Strip, t)
			continue
		}
		if t.Kind != tracks.Subtitle {
			continue
		}
		if shouldExtract(t, p) && !inv.HasSidecar(t.ID, tracks.ExtensionForCodec(t.Codec)) {
			sets.Extract = append(sets.Extract, t)
		}
		if shouldOCR(t, p) && !inv.HasTextSidecar(t.ID) {
			if resident, ok := residentSidecar(inv, t); ok {
				t = resident
			}
			sets.OCR = append(sets.OCR, t)
		}
	}
	for _, s := range inv.Sidecars {
		if !shouldOCR(s, p) || inv.HasTextSidecar(s.ID) {
			continue
		}
		if containsID(sets.OCR, s.ID) {
			continue
		}
		sets.OCR = append(sets.OCR, s)
	}
	return sets
}

func shouldStrip(t tracks.Track, p Policy) bool {
	switch t.Kind {
	case tracks.Audio:
		if !p.StripMode.stripsAudio() {
			return false
		}
	case tracks.Subtitle:
		if !p.StripMode.stripsSubtitles() {
			return false
		}
	default:
		return false
	}
	if p.Languages.Contains(t.Language) {
		return false
	}
	if p.KeepDefaultTrack && t.Flagged() {
		return false
	}
	return true
}

func shouldExtract(t tracks.Track, p Policy) bool {
	if p.ExtractMode == ExtractNone || !p.Languages.Contains(t.Language) {
		return false
	}
	return !p.ExtractOnlyTextSubs || t.IsTextSubtitle()
}

func shouldOCR(t tracks.Track, p Policy) bool {
	if p.OCRMode == OCRNone || t.Kind != tracks.Subtitle || !p.Languages.Contains(t.Language) {
		return false
	}
	return t.IsImageSubtitle() || p.OCRAlways
}

// residentSidecar returns a sidecar from an earlier run holding the track in
// its container format, so OCR can start from it without demuxing again.
func residentSidecar(inv tracks.Inventory, t tracks.Track) (tracks.Track, bool) {
	ext := tracks.ExtensionForCodec(t.Codec)
	for _, s := range inv.Sidecars {
		if s.ID == t.ID && tracks.ExtensionForCodec(s.Codec) == ext {
			s.Default, s.Forced, s.Original = t.Default, t.Forced, t.Original
			return s, true
		}
	}
	return tracks.Track{}, false
}

func containsID(list []tracks.Track, id int) bool {
	for _, t := range list {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Detached returns container subtitle tracks that extract_remux removes from
// the container because their sidecar already sits beside it. Decide leaves
// such tracks out of Extract, so the remux has to be told separately.
func Detached(inv tracks.Inventory, p Policy) []tracks.Track {
	if p.ExtractMode != ExtractAndRemux {
		return nil
	}
	var out []tracks.Track
	for _, t := range inv.Tracks {
		if t.Kind != tracks.Subtitle || shouldStrip(t, p) || !shouldExtract(t, p) {
			continue
		}
		if inv.HasSidecar(t.ID, tracks.ExtensionForCodec(t.Codec)) {
			out = append(out, t)
		}
	}
	return out
}
