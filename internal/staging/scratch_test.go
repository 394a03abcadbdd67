package staging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScratchDirIsDeterministic(t *testing.T) {
	a := ScratchDir("/media/movies/Movie (2020).mkv")
	b := ScratchDir("/media/movies/Movie (2020).mkv")
	if a != b {
		t.Fatalf("ScratchDir not deterministic: %q vs %q", a, b)
	}
	if filepath.Dir(a) != "/media/movies" {
		t.Fatalf("scratch dir should be a sibling, got %q", a)
	}
	if !strings.HasPrefix(filepath.Base(a), "Movie (2020)_") {
		t.Fatalf("unexpected scratch name %q", a)
	}
	if !IsScratchDir(a) {
		t.Fatalf("IsScratchDir(%q) = false", a)
	}
	if ScratchDir("/media/movies/Other.mkv") == a {
		t.Fatal("different containers must not share a scratch dir")
	}
}

func TestIsScratchDir(t *testing.T) {
	tests := map[string]bool{
		"Movie_" + strings.Repeat("a", 64): true,
		"Movie_" + strings.Repeat("A", 64): false,
		"Movie_" + strings.Repeat("a", 63): false,
		"Season 01":                        false,
	}
	for name, want := range tests {
		if got := IsScratchDir(name); got != want {
			t.Errorf("IsScratchDir(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestEnsureAndRemove(t *testing.T) {
	root := t.TempDir()
	container := filepath.Join(root, "movie.mkv")

	dir, err := Ensure(container)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("scratch dir not created: %v", err)
	}

	leftover := filepath.Join(dir, "movie.3.eng..srt")
	if err := os.WriteFile(leftover, []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Remove(dir); !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("Remove on non-empty dir = %v, want ErrNotEmpty", err)
	}
	if _, err := os.Stat(leftover); err != nil {
		t.Fatal("Remove must not delete files")
	}

	if err := os.Remove(leftover); err != nil {
		t.Fatal(err)
	}
	if err := Remove(dir); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("expected scratch dir removed")
	}
	if err := Remove(dir); err != nil {
		t.Fatalf("Remove on missing dir: %v", err)
	}
}
