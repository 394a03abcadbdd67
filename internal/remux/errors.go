package remux

import (
	"errors"
	"fmt"

	"remuxer/internal/services"
)

var (
	// ErrInventoryUnavailable means the container could not be probed.
	ErrInventoryUnavailable = errors.New("track inventory unavailable")
	// ErrWorkAreaUnavailable means the scratch directory could not be created.
	ErrWorkAreaUnavailable = errors.New("work area unavailable")
)

func sessionError(kind, marker error, stage, operation, message string, cause error) error {
	return fmt.Errorf("%w: %w", kind, services.Wrap(marker, stage, operation, message, cause))
}
