package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"remuxer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The state, log and library directories are created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Library.Roots = []string{filepath.Join(base, "library")}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range append([]string{cfgVal.Paths.StateDir, cfgVal.Paths.LogDir}, cfgVal.Library.Roots...) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return builder.cfg
}

// WithPolicy overrides the strip, extract and OCR modes on the test config.
func WithPolicy(strip, extract, ocr string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Policy.StripMode = strip
		b.cfg.Policy.ExtractMode = extract
		b.cfg.Policy.OCRMode = ocr
	}
}

// WithLanguages replaces the language whitelist on the test config.
func WithLanguages(langs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Policy.WhitelistedLanguages = langs
	}
}

// WithStubbedBinaries writes shell stubs for the named tools into a bin
// directory at the front of PATH. Each stub prints "<name> v0.0.0-test" and
// exits 0. With no names, the three configured tools are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{b.cfg.Tools.MkvMerge, b.cfg.Tools.MkvExtract, b.cfg.Tools.OCR}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		for _, name := range names {
			script := fmt.Sprintf("#!/bin/sh\necho '%s v0.0.0-test'\nexit 0\n", name)
			if err := os.WriteFile(filepath.Join(binDir, name), []byte(script), 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

// LibraryRoot returns the first library root of the generated config.
func LibraryRoot(cfg *config.Config) string {
	return cfg.Library.Roots[0]
}
