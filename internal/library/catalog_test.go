package library

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"remuxer/internal/staging"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFSCatalogListsMatchingFilesSorted(t *testing.T) {
	root := t.TempDir()
	b := touch(t, filepath.Join(root, "Show", "S01", "b.mkv"))
	a := touch(t, filepath.Join(root, "Show", "S01", "a.MKV"))
	webm := touch(t, filepath.Join(root, "clip.webm"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, ".hidden.mkv"))
	touch(t, filepath.Join(root, ".cache", "c.mkv"))
	scratch := staging.ScratchDir(b)
	touch(t, filepath.Join(scratch, "b.mkv"))

	catalog := NewFSCatalog([]string{root, filepath.Join(root, "missing")}, []string{"mkv", ".webm"})
	count, err := catalog.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("Count = %d, want 3", count)
	}
	items, err := catalog.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []Item{
		{Path: a, Container: "mkv"},
		{Path: b, Container: "mkv"},
		{Path: webm, Container: "webm"},
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("items = %+v, want %+v", items, want)
	}
}

func TestFSCatalogPaging(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"1.mkv", "2.mkv", "3.mkv"} {
		touch(t, filepath.Join(root, name))
	}
	catalog := NewFSCatalog([]string{root}, []string{"mkv"})

	tests := []struct {
		offset, limit, want int
	}{
		{0, 2, 2},
		{2, 2, 1},
		{3, 2, 0},
		{0, 0, 3},
	}
	for _, tt := range tests {
		items, err := catalog.List(context.Background(), tt.offset, tt.limit)
		if err != nil {
			t.Fatalf("List(%d, %d): %v", tt.offset, tt.limit, err)
		}
		if len(items) != tt.want {
			t.Errorf("List(%d, %d) returned %d items, want %d", tt.offset, tt.limit, len(items), tt.want)
		}
	}
}

func TestStaticCatalog(t *testing.T) {
	catalog := StaticCatalog{ItemForPath("/m/a.mkv"), ItemForPath("/m/b.MP4")}
	if n, _ := catalog.Count(context.Background()); n != 2 {
		t.Fatalf("Count = %d", n)
	}
	items, _ := catalog.List(context.Background(), 1, 5)
	if len(items) != 1 || items[0].Container != "mp4" {
		t.Fatalf("unexpected page: %+v", items)
	}
}

func TestAcquireScanLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "scan.lock")
	lock, err := AcquireScanLock(path)
	if err != nil {
		t.Fatalf("AcquireScanLock: %v", err)
	}
	if _, err := AcquireScanLock(path); err == nil {
		t.Fatal("expected second acquisition to fail")
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := AcquireScanLock(path)
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	_ = again.Release()
}
