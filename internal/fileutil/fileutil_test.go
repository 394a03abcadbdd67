package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o077 != 0 {
		t.Fatalf("mode = %o, want owner-only", info.Mode().Perm())
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.bin")
	if err := CopyFileVerified(filepath.Join(dir, "nonexistent"), dst, 0o644); err == nil {
		t.Fatal("expected error for missing source")
	}
	if FileExists(dst) {
		t.Fatal("destination must not be created for a missing source")
	}
}

func TestMoveFileReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	scratch := filepath.Join(dir, "scratch")
	if err := os.Mkdir(scratch, 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(scratch, "movie.mkv")
	dst := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(src, []byte("remuxed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("original container"), 0o640); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(src, dst, 0o640); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "remuxed" {
		t.Fatalf("dst content = %q", got)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode = %o, want 640", info.Mode().Perm())
	}
	if FileExists(src) {
		t.Fatal("source should be gone after move")
	}
}

func TestMoveFileKeepsSourceModeByDefault(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.srt")
	dst := filepath.Join(dir, "b.srt")
	if err := os.WriteFile(src, []byte("1"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := MoveFile(src, dst, 0); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %o, want 600", info.Mode().Perm())
	}
}

func TestMoveFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := MoveFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"), 0); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(file) {
		t.Fatal("expected file to exist")
	}
	if FileExists(dir) {
		t.Fatal("directories are not files")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Fatal("missing file reported as existing")
	}
}
