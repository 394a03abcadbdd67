package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrScanInProgress is returned when another process holds the scan lock.
var ErrScanInProgress = errors.New("another scan is already running")

// ScanLock is a held scan lock.
type ScanLock struct {
	lock *flock.Flock
}

// AcquireScanLock takes the process-wide scan lock at path without blocking.
func AcquireScanLock(path string) (*ScanLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrScanInProgress, path)
	}
	return &ScanLock{lock: lock}, nil
}

// Release drops the lock.
func (l *ScanLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
