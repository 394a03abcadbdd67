package staging

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"remuxer/internal/logging"
)

// CleanStaleResult contains the outcome of a stale scratch cleanup.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// DirInfo describes a scratch directory found under a library root.
type DirInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// ListScratch walks roots and returns every scratch directory found, sorted by
// path. Missing roots are skipped.
func ListScratch(ctx context.Context, roots []string) ([]DirInfo, error) {
	var dirs []DirInfo
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && os.IsNotExist(err) {
					return filepath.SkipDir
				}
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if !d.IsDir() || path == root || !IsScratchDir(d.Name()) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return filepath.SkipDir
			}
			size, _ := dirSize(path)
			dirs = append(dirs, DirInfo{Path: path, ModTime: info.ModTime(), Size: size})
			return filepath.SkipDir
		})
		if err != nil {
			return dirs, err
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Path < dirs[j].Path })
	return dirs, nil
}

// CleanStale removes scratch directories under roots whose modification time
// is older than maxAge. Scratch directories left behind by interrupted runs
// hold only intermediate files, so they are removed recursively.
func CleanStale(ctx context.Context, roots []string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}
	if logger == nil {
		logger = logging.NewNop()
	}

	dirs, err := ListScratch(ctx, roots)
	if err != nil {
		result.Errors = append(result.Errors, CleanupError{Path: strings.Join(roots, ","), Error: err})
	}

	cutoff := time.Now().Add(-maxAge)
	for _, dir := range dirs {
		if ctx.Err() != nil {
			break
		}
		if !dir.ModTime.Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(dir.Path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dir.Path, Error: err})
			logger.Warn("failed to remove stale scratch directory",
				logging.String("path", dir.Path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "scratch_cleanup_failed"),
				logging.String(logging.FieldErrorHint, "check library directory permissions"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
			continue
		}
		result.Removed = append(result.Removed, dir.Path)
		logger.Info("removed stale scratch directory",
			logging.String("path", dir.Path),
			logging.Duration("age", time.Since(dir.ModTime)),
			logging.Int64("size_bytes", dir.Size),
			logging.String(logging.FieldEventType, "scratch_cleanup"),
		)
	}
	return result
}

func dirSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			if info, infoErr := d.Info(); infoErr == nil {
				size += info.Size()
			}
		}
		return nil
	})
	return size, err
}
