package remux

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"remuxer/internal/media/mkvmerge"
	"remuxer/internal/policy"
	"remuxer/internal/services"
	"remuxer/internal/toolexec"
	"remuxer/internal/tracks"
)

func TestClassifyBuildsInventory(t *testing.T) {
	dir := t.TempDir()
	path := writeContainer(t, dir)
	for _, name := range []string{
		"movie.5.eng..Signs.Songs.srt",
		"movie.6.jpn..sup",
		"movie.7.eng..idx",
		"other.5.eng..srt",
		"movie.nfo",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	forced := probeTrack(2, mkvmerge.TypeSubtitles, tracks.CodecPGS, "eng", "Forced: Signs", boolp(false))
	forced.Properties.ForcedTrack = boolp(true)
	fake := newFakeTools(t, identJSON(t,
		probeTrack(1, mkvmerge.TypeAudio, "DTS", "eng", "", boolp(true)),
		forced,
	))

	inv, err := newTestProcessor(policy.Default(), fake).Classify(context.Background(), path)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if inv.Container != "Matroska" || len(inv.Tracks) != 2 {
		t.Fatalf("unexpected inventory: %+v", inv)
	}
	audio, sub := inv.Tracks[0], inv.Tracks[1]
	if audio.Kind != tracks.Audio || audio.Default != tracks.True || audio.Forced != tracks.Unknown {
		t.Fatalf("unexpected audio track: %+v", audio)
	}
	if sub.Kind != tracks.Subtitle || sub.Default != tracks.False || sub.Forced != tracks.True {
		t.Fatalf("unexpected subtitle flags: %+v", sub)
	}
	if sub.Name != ".Forced_ Signs" {
		t.Fatalf("sanitized name = %q", sub.Name)
	}
	if sub.Materialized() {
		t.Fatal("container tracks are not materialized")
	}

	if len(inv.Sidecars) != 2 {
		t.Fatalf("expected 2 sidecars, got %+v", inv.Sidecars)
	}
	first := inv.Sidecars[0]
	if first.ID != 5 || first.Name != ".Signs.Songs" || !first.IsTextSubtitle() {
		t.Fatalf("unexpected sidecar: %+v", first)
	}
	if first.FilePath != filepath.Join(dir, "movie.5.eng..Signs.Songs.srt") {
		t.Fatalf("sidecar path = %q", first.FilePath)
	}
	if second := inv.Sidecars[1]; second.ID != 6 || !second.IsImageSubtitle() {
		t.Fatalf("unexpected sidecar: %+v", second)
	}
}

func TestClassifyLeavesSiblingContainerSidecars(t *testing.T) {
	dir := t.TempDir()
	path := writeContainer(t, dir)
	for _, name := range []string{
		"movie.2020.mkv",
		"movie.2020.1.eng..srt",
		"movie.3.eng..srt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	fake := newFakeTools(t, identJSON(t))

	inv, err := newTestProcessor(policy.Default(), fake).Classify(context.Background(), path)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(inv.Sidecars) != 1 || inv.Sidecars[0].ID != 3 {
		t.Fatalf("expected only movie.3.eng..srt, got %+v", inv.Sidecars)
	}
}

func TestClassifyProbeErrors(t *testing.T) {
	tests := []struct {
		name       string
		result     toolexec.Result
		err        error
		validation bool
	}{
		{"empty output", toolexec.Result{}, nil, true},
		{"malformed output", toolexec.Result{Stdout: "{"}, nil, true},
		{"tool error exit", toolexec.Result{ExitCode: 2, Stderr: "unsupported"}, nil, false},
		{"tool not launched", toolexec.Result{}, errors.New("exec: not found"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := toolexec.RunnerFunc(func(context.Context, string, ...string) (toolexec.Result, error) {
				return tt.result, tt.err
			})
			_, err := newTestProcessor(policy.Default(), runner).Classify(context.Background(), "/media/movie.mkv")
			if !errors.Is(err, ErrInventoryUnavailable) {
				t.Fatalf("error = %v, want ErrInventoryUnavailable", err)
			}
			if got := errors.Is(err, services.ErrValidation); got != tt.validation {
				t.Fatalf("validation marker = %v, want %v", got, tt.validation)
			}
			if !tt.validation && !errors.Is(err, services.ErrExternalTool) {
				t.Fatalf("expected external tool marker, got %v", err)
			}
		})
	}
}
