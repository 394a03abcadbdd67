package history

import "time"

// Status is the outcome recorded for a processed container.
type Status string

const (
	// StatusRemuxed means the container was rebuilt and committed.
	StatusRemuxed Status = "remuxed"
	// StatusUnchanged means the session finished without rewriting the container.
	StatusUnchanged Status = "unchanged"
	// StatusFailed means a tool failure left the container untouched.
	StatusFailed Status = "failed"
	// StatusInvalid means the file could not be probed as a container.
	StatusInvalid Status = "invalid"
)

// Settled reports whether a file with this status needs no further work
// until it changes on disk. Failed files are retried on every scan.
func (s Status) Settled() bool {
	switch s {
	case StatusRemuxed, StatusUnchanged, StatusInvalid:
		return true
	default:
		return false
	}
}

// Entry is one ledger row.
type Entry struct {
	ID          int64     `json:"id"`
	Path        string    `json:"path"`
	SizeBytes   int64     `json:"size_bytes"`
	ModTime     time.Time `json:"mod_time"`
	Status      Status    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	RunID       string    `json:"run_id,omitempty"`
	Stripped    int       `json:"stripped"`
	Extracted   int       `json:"extracted"`
	OCR         int       `json:"ocr"`
	Merged      int       `json:"merged"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Matches reports whether the entry still describes a file with the given
// size and modification time.
func (e Entry) Matches(size int64, modTime time.Time) bool {
	return e.SizeBytes == size && e.ModTime.Equal(modTime)
}
