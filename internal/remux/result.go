package remux

import (
	"fmt"
	"time"

	"remuxer/internal/history"
)

// Result summarises one session.
type Result struct {
	Path      string         `json:"path"`
	Outcome   history.Status `json:"outcome"`
	Detail    string         `json:"detail,omitempty"`
	Stripped  int            `json:"stripped"`
	Extracted int            `json:"extracted"`
	OCR       int            `json:"ocr"`
	Merged    int            `json:"merged"`
	Committed bool           `json:"committed"`
	Sidecars  []string       `json:"sidecars,omitempty"`
	Duration  time.Duration  `json:"duration"`
}

func (r *Result) fail(detail string) {
	r.Outcome = history.StatusFailed
	if r.Detail == "" {
		r.Detail = detail
	}
}

func toolFailureDetail(tool string, exitCode int, err error) string {
	if err != nil {
		return fmt.Sprintf("%s: %v", tool, err)
	}
	return fmt.Sprintf("%s exit status %d", tool, exitCode)
}
