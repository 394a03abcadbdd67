package services

import (
	"errors"
	"strings"

	"remuxer/internal/history"
)

// Markers classify session failures. Every error built by Wrap matches
// exactly one of them under errors.Is.
var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// StageError carries the pipeline stage and operation a failure came from.
type StageError struct {
	Marker    error
	Stage     string
	Operation string
	Message   string
	Err       error
}

func (e *StageError) Error() string {
	var b strings.Builder
	b.WriteString(e.Marker.Error())
	b.WriteString(": ")
	b.WriteString(e.detail())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the marker and the cause.
func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Marker}
	}
	return []error{e.Marker, e.Err}
}

func (e *StageError) detail() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.Stage, e.Operation, e.Message} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "remux failure"
	}
	return strings.Join(parts, ": ")
}

// Wrap tags err with marker and the stage context. A nil marker is treated as
// ErrTransient.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	return &StageError{
		Marker:    marker,
		Stage:     stage,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// StageOf returns the stage recorded on the first StageError in err's chain.
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// FailureStatus maps a session error to the ledger status recorded for the
// file. Files that cannot be read as containers are marked invalid so later
// scans only retry them once they change.
func FailureStatus(err error) history.Status {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return history.StatusInvalid
	default:
		return history.StatusFailed
	}
}

// Hint returns a short operator-facing suggestion for err.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "verify the file is a readable Matroska container"
	case errors.Is(err, ErrExternalTool):
		return "run `remuxer doctor` and check the tool output in the logs"
	case errors.Is(err, ErrConfiguration):
		return "check directory permissions and the [policy] section of the config"
	case errors.Is(err, ErrNotFound):
		return "the file moved or was deleted during the scan"
	default:
		return "check logs for details"
	}
}
