package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"remuxer/internal/config"
	"remuxer/internal/logging"
	"remuxer/internal/media/mkvmerge"
	"remuxer/internal/testsupport"
	"remuxer/internal/toolexec"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	library    string
	tools      *fakeMkvToolNix
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	opts = append([]testsupport.ConfigOption{testsupport.WithStubbedBinaries()}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	homeDir := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		library:    testsupport.LibraryRoot(cfg),
		tools:      &fakeMkvToolNix{identify: map[string]string{}},
	}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommandWith(e.tools, logging.NewNop())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// fakeMkvToolNix answers identification per container path and rebuilds
// containers on mux.
type fakeMkvToolNix struct {
	mu       sync.Mutex
	identify map[string]string
	muxes    [][]string
}

func (f *fakeMkvToolNix) Run(_ context.Context, name string, args ...string) (toolexec.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch filepath.Base(name) {
	case "mkvmerge":
		if len(args) > 0 && args[0] == "--version" {
			return toolexec.Result{Stdout: "mkvmerge v80.0 ('Roundabout') 64-bit\n"}, nil
		}
		if len(args) > 0 && args[0] == "-i" {
			// Unknown files identify as nothing, like a truncated container.
			return toolexec.Result{Stdout: f.identify[args[len(args)-1]]}, nil
		}
		f.muxes = append(f.muxes, args)
		if err := os.WriteFile(args[1], []byte("rebuilt"), 0o644); err != nil {
			return toolexec.Result{}, err
		}
		return toolexec.Result{Stdout: "Multiplexing took 1 second."}, nil
	case "mkvextract":
		if len(args) > 0 && args[0] == "--version" {
			return toolexec.Result{Stdout: "mkvextract v80.0\n"}, nil
		}
	}
	return toolexec.Result{ExitCode: 1}, nil
}

func (f *fakeMkvToolNix) muxCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.muxes)
}

// addContainer writes a container under the library root and registers its
// identification: one English and one French audio track.
func (e *cliTestEnv) addContainer(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.library, name)
	testsupport.WriteFile(t, path, 64)

	yes := true
	ident := mkvmerge.Identification{
		Container: mkvmerge.Container{Recognized: true, Supported: true, Type: "Matroska"},
		Tracks: []mkvmerge.Track{
			{ID: 0, Type: mkvmerge.TypeVideo, Codec: "HEVC/H.265/MPEG-H"},
			{ID: 1, Type: mkvmerge.TypeAudio, Codec: "AC-3", Properties: mkvmerge.TrackProperties{Language: "eng", DefaultTrack: &yes}},
			{ID: 2, Type: mkvmerge.TypeAudio, Codec: "AC-3", Properties: mkvmerge.TrackProperties{Language: "fre"}},
		},
	}
	data, err := json.Marshal(ident)
	if err != nil {
		t.Fatalf("marshal identification: %v", err)
	}
	e.tools.mu.Lock()
	e.tools.identify[path] = string(data)
	e.tools.mu.Unlock()
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
