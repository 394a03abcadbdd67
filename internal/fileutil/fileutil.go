package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFileVerified copies src to dst, creating dst with mode, and confirms
// the result by re-reading dst and comparing its size and SHA-256 digest
// with what was read from src. dst is removed on any failure.
func CopyFileVerified(src, dst string, mode os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	srcHash := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHash))
	if err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}

	dstSize, dstSum, err := digestFile(dst)
	if err != nil {
		return fmt.Errorf("verify copy: %w", err)
	}
	if dstSize != written {
		return fmt.Errorf("copy size mismatch: read %d bytes, destination holds %d", written, dstSize)
	}
	if !bytes.Equal(srcHash.Sum(nil), dstSum) {
		return errors.New("copy digest mismatch")
	}
	return nil
}

func digestFile(path string) (int64, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, nil, err
	}
	return n, h.Sum(nil), nil
}

// MoveFile moves src to dst, replacing dst if it exists. A plain rename is
// tried first. When src and dst live on different filesystems the data is
// copied to a temporary sibling of dst, verified, and renamed over dst, so
// dst is never observed half-written. mode is applied to the result; a zero
// mode keeps the source permissions.
func MoveFile(src, dst string, mode os.FileMode) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if mode == 0 {
		mode = srcInfo.Mode().Perm()
	}

	if err := os.Rename(src, dst); err == nil {
		return os.Chmod(dst, mode)
	} else if !isCrossDevice(err) {
		return fmt.Errorf("rename %s: %w", filepath.Base(src), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()

	if err := CopyFileVerified(src, tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(dst), err)
	}
	if err := os.Remove(src); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
