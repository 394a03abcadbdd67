// Package staging owns the per-container scratch directories where demuxed
// sidecars, OCR output and the remuxed container are built before commit.
package staging

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var scratchNamePattern = regexp.MustCompile(`_[0-9a-f]{64}$`)

// ScratchDir returns the scratch directory for the container at path:
// a sibling named `<base>_<sha256(base)>` where base is the file name without
// extension. The same container always maps to the same directory.
func ScratchDir(path string) string {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	sum := sha256.Sum256([]byte(base))
	return filepath.Join(dir, base+"_"+hex.EncodeToString(sum[:]))
}

// IsScratchDir reports whether name looks like a directory created by
// ScratchDir.
func IsScratchDir(name string) bool {
	return scratchNamePattern.MatchString(filepath.Base(name))
}

// Ensure creates the scratch directory for path and returns it.
func Ensure(path string) (string, error) {
	dir := ScratchDir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create scratch dir %s: %w", dir, err)
	}
	return dir, nil
}

// Remove deletes dir only when it is empty. A directory still holding files
// is left in place and reported through ErrNotEmpty.
func Remove(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s holds %d entries", ErrNotEmpty, dir, len(entries))
	}
	if err := os.Remove(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ErrNotEmpty marks a scratch directory that still holds files.
var ErrNotEmpty = errors.New("scratch directory not empty")
