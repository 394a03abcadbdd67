package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"remuxer/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("scratch", dir, 1); !result.Passed {
		t.Fatalf("expected 1 byte to fit, got: %s", result.Detail)
	}
	if result := CheckFreeSpace("scratch", dir, ^uint64(0)); result.Passed {
		t.Fatal("expected failure for impossible requirement")
	}
	if result := CheckFreeSpace("scratch", filepath.Join(dir, "missing"), 1); result.Passed {
		t.Fatal("expected failure for missing dir")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ChecksRoots(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Library.Roots = []string{t.TempDir(), filepath.Join(t.TempDir(), "missing")}

	results := RunAll(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Library root" {
		t.Fatalf("expected only the missing root to fail, got %+v", failed)
	}
}

func TestToolRequirementsFollowPolicy(t *testing.T) {
	cfg := config.Default()
	reqs := ToolRequirements(&cfg)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	if reqs[0].Optional {
		t.Fatal("mkvmerge is always required")
	}
	if !reqs[1].Optional || !reqs[2].Optional {
		t.Fatal("extract and OCR tools are optional when the policy never uses them")
	}

	cfg.Policy.OCRMode = "nocr"
	reqs = ToolRequirements(&cfg)
	if reqs[1].Optional || reqs[2].Optional {
		t.Fatal("OCR needs both mkvextract and the converter")
	}
}
