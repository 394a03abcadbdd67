// Package ocr describes the command contract of the subtitle OCR converter.
// Any converter accepting `/convert <file> subrip` and writing a sibling .srt
// file satisfies it.
package ocr

import (
	"path/filepath"
	"strings"
)

// DefaultBinary is used when no binary is configured.
const DefaultBinary = "subtitleedit"

// ConvertArgs builds `/convert <in> subrip`.
func ConvertArgs(input string) []string {
	return []string{"/convert", input, "subrip"}
}

// OutputPath returns the file the converter is expected to write for input.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".srt"
}
