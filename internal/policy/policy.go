package policy

import "strings"

// LanguageSet is the language whitelist. Tags are compared verbatim.
type LanguageSet map[string]struct{}

// NewLanguageSet builds a whitelist from tags, ignoring blank entries.
func NewLanguageSet(tags ...string) LanguageSet {
	set := make(LanguageSet, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}

// Contains reports whether the tag is whitelisted.
func (s LanguageSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Policy is the read-only configuration a session runs under.
type Policy struct {
	Languages           LanguageSet
	KeepDefaultTrack    bool
	StripMode           StripMode
	ExtractMode         ExtractMode
	ExtractOnlyTextSubs bool
	OCRMode             OCRMode
	OCRAlways           bool
}

// Default mirrors the out-of-the-box configuration.
func Default() Policy {
	return Policy{
		Languages:           NewLanguageSet("eng"),
		KeepDefaultTrack:    true,
		StripMode:           StripNone,
		ExtractMode:         ExtractNone,
		ExtractOnlyTextSubs: true,
		OCRMode:             OCRNone,
		OCRAlways:           false,
	}
}

// MergesOCROutput reports whether OCR results are folded back into the
// container. Only when no extraction was requested are they merged.
func (p Policy) MergesOCROutput() bool {
	return p.ExtractMode == ExtractNone
}
