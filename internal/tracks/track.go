package tracks

import (
	"fmt"
	"strings"
)

// Kind identifies the stream type of a Track.
type Kind string

const (
	Audio    Kind = "audio"
	Subtitle Kind = "subtitle"
)

// TriState carries a container flag that may be absent from the probe output.
type TriState uint8

const (
	Unknown TriState = iota
	True
	False
)

// FromBool converts an optional probe flag.
func FromBool(value *bool) TriState {
	switch {
	case value == nil:
		return Unknown
	case *value:
		return True
	default:
		return False
	}
}

// IsTrue reports whether the flag was explicitly set.
func (t TriState) IsTrue() bool { return t == True }

func (t TriState) String() string {
	switch t {
	case True:
		return "yes"
	case False:
		return "no"
	default:
		return "unknown"
	}
}

// MarshalText renders the flag for JSON output.
func (t TriState) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses the form written by MarshalText.
func (t *TriState) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "yes":
		*t = True
	case "no":
		*t = False
	case "", "unknown":
		*t = Unknown
	default:
		return fmt.Errorf("invalid flag value %q", text)
	}
	return nil
}

// Track is one stream inside a container or its extracted sidecar form.
type Track struct {
	ID       int      `json:"id"`
	Kind     Kind     `json:"kind"`
	Codec    string   `json:"codec"`
	Language string   `json:"language"`
	Name     string   `json:"name,omitempty"`
	FilePath string   `json:"file_path,omitempty"`
	Default  TriState `json:"default"`
	Forced   TriState `json:"forced"`
	Original TriState `json:"original"`
}

// IsTextSubtitle reports whether the track is a subtitle in a text format.
func (t Track) IsTextSubtitle() bool {
	return t.Kind == Subtitle && !IsImageCodec(t.Codec)
}

// IsImageSubtitle reports whether the track is a bitmap subtitle that needs
// OCR before it can be used as text.
func (t Track) IsImageSubtitle() bool {
	return t.Kind == Subtitle && IsImageCodec(t.Codec)
}

// Flagged reports whether any of default, forced or original is set.
func (t Track) Flagged() bool {
	return t.Default.IsTrue() || t.Forced.IsTrue() || t.Original.IsTrue()
}

// Materialized reports whether the track exists as a standalone file.
func (t Track) Materialized() bool {
	return strings.TrimSpace(t.FilePath) != ""
}

// Inventory is an immutable snapshot of a container's tracks together with
// sidecars already present beside it.
type Inventory struct {
	Path      string  `json:"path"`
	Container string  `json:"container,omitempty"`
	Tracks    []Track `json:"tracks"`
	Sidecars  []Track `json:"sidecars,omitempty"`
}

// Count returns the number of container tracks of the given kind.
func (inv Inventory) Count(kind Kind) int {
	n := 0
	for _, t := range inv.Tracks {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// HasSidecar reports whether a sidecar for the track id with the given
// extension already sits beside the container.
func (inv Inventory) HasSidecar(id int, ext string) bool {
	for _, s := range inv.Sidecars {
		if s.ID == id && strings.EqualFold(extOf(s.FilePath), ext) {
			return true
		}
	}
	return false
}

// HasTextSidecar reports whether a text sidecar for the track id exists.
func (inv Inventory) HasTextSidecar(id int) bool {
	for _, s := range inv.Sidecars {
		if s.ID == id && s.IsTextSubtitle() {
			return true
		}
	}
	return false
}
