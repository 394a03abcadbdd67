package policy

import (
	"fmt"
	"strings"
)

// StripMode selects which track kinds are eligible for stripping.
type StripMode string

const (
	StripNone      StripMode = "none"
	StripSubtitles StripMode = "subtitles"
	StripAudio     StripMode = "audio"
	StripBoth      StripMode = "both"
)

// ExtractMode selects whether subtitle tracks are written out as sidecars and
// whether extracted tracks are removed from the rebuilt container.
type ExtractMode string

const (
	ExtractNone     ExtractMode = "none"
	ExtractOnly     ExtractMode = "extract"
	ExtractAndRemux ExtractMode = "extract_remux"
)

// OCRMode selects the OCR engine. The engine only gates whether OCR runs.
type OCRMode string

const (
	OCRNone      OCRMode = "none"
	OCRTesseract OCRMode = "tesseract"
	OCRNOcr      OCRMode = "nocr"
)

// ParseStripMode accepts the mode names used in configuration files.
func ParseStripMode(value string) (StripMode, error) {
	switch normalizeMode(value) {
	case "", "none":
		return StripNone, nil
	case "subtitles", "subtitle", "strip_subtitles":
		return StripSubtitles, nil
	case "audio", "strip_audio":
		return StripAudio, nil
	case "both", "strip_both":
		return StripBoth, nil
	default:
		return "", fmt.Errorf("unknown strip mode %q", value)
	}
}

// ParseExtractMode accepts the mode names used in configuration files.
func ParseExtractMode(value string) (ExtractMode, error) {
	switch normalizeMode(value) {
	case "", "none":
		return ExtractNone, nil
	case "extract", "extract_only":
		return ExtractOnly, nil
	case "extract_remux", "extract_and_remux":
		return ExtractAndRemux, nil
	default:
		return "", fmt.Errorf("unknown extract mode %q", value)
	}
}

// ParseOCRMode accepts the mode names used in configuration files.
func ParseOCRMode(value string) (OCRMode, error) {
	switch normalizeMode(value) {
	case "", "none":
		return OCRNone, nil
	case "tesseract":
		return OCRTesseract, nil
	case "nocr":
		return OCRNOcr, nil
	default:
		return "", fmt.Errorf("unknown ocr mode %q", value)
	}
}

func normalizeMode(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.ReplaceAll(value, "-", "_")
}

func (m StripMode) String() string { return string(m) }
func (m ExtractMode) String() string { return string(m) }
func (m OCRMode) String() string { return string(m) }

func (m StripMode) stripsAudio() bool {
	return m == StripAudio || m == StripBoth
}

func (m StripMode) stripsSubtitles() bool {
	return m == StripSubtitles || m == StripBoth
}
