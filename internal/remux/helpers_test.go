package remux

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"remuxer/internal/logging"
	"remuxer/internal/media/mkvmerge"
	"remuxer/internal/media/ocr"
	"remuxer/internal/policy"
	"remuxer/internal/toolexec"
)

const (
	fakeMerge   = "mkvmerge"
	fakeExtract = "mkvextract"
	fakeOCR     = "ocr"
)

func boolp(v bool) *bool { return &v }

func probeTrack(id int, kind, codec, lang, name string, def *bool) mkvmerge.Track {
	return mkvmerge.Track{
		ID:    id,
		Type:  kind,
		Codec: codec,
		Properties: mkvmerge.TrackProperties{
			Language:     lang,
			TrackName:    name,
			DefaultTrack: def,
		},
	}
}

func identJSON(t *testing.T, list ...mkvmerge.Track) string {
	t.Helper()
	ident := mkvmerge.Identification{
		Container: mkvmerge.Container{Recognized: true, Supported: true, Type: "Matroska"},
		Tracks:    append([]mkvmerge.Track{probeTrack(0, mkvmerge.TypeVideo, "AVC/H.264/MPEG-4p10", "und", "", nil)}, list...),
	}
	data, err := json.Marshal(ident)
	if err != nil {
		t.Fatalf("marshal identification: %v", err)
	}
	return string(data)
}

// fakeTools emulates mkvmerge, mkvextract and the OCR converter on disk.
type fakeTools struct {
	t *testing.T

	mu       sync.Mutex
	calls    [][]string
	identify string
	afterMux string

	muxStdout   string
	muxExit     int
	extractExit int
	// extractPartial makes a failing mkvextract leave truncated outputs.
	extractPartial bool
	ocrExit        int
	ocrSilent      bool

	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func newFakeTools(t *testing.T, identify string) *fakeTools {
	return &fakeTools{t: t, identify: identify, muxStdout: "Multiplexing took 2 seconds."}
}

func (f *fakeTools) Run(_ context.Context, name string, args ...string) (toolexec.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	switch name {
	case fakeMerge:
		if len(args) > 0 && args[0] == "-i" {
			f.mu.Lock()
			defer f.mu.Unlock()
			return toolexec.Result{Stdout: f.identify}, nil
		}
		if f.muxExit == 0 {
			f.write(args[1], "rebuilt container")
			if f.afterMux != "" {
				f.mu.Lock()
				f.identify = f.afterMux
				f.mu.Unlock()
			}
		}
		return toolexec.Result{ExitCode: f.muxExit, Stdout: f.muxStdout}, nil
	case fakeExtract:
		content := "extracted"
		if f.extractExit != 0 {
			if !f.extractPartial {
				return toolexec.Result{ExitCode: f.extractExit, Stderr: "Error: track not found"}, nil
			}
			content = "trunc"
		}
		for _, spec := range args[2:] {
			_, out, _ := strings.Cut(spec, ":")
			f.write(out, content)
		}
		return toolexec.Result{ExitCode: f.extractExit}, nil
	case fakeOCR:
		n := f.inflight.Add(1)
		for {
			cur := f.maxInflight.Load()
			if n <= cur || f.maxInflight.CompareAndSwap(cur, n) {
				break
			}
		}
		defer f.inflight.Add(-1)
		if f.ocrExit == 0 && !f.ocrSilent {
			f.write(ocr.OutputPath(args[1]), "1\n00:00:01,000 --> 00:00:02,000\nHello\n")
		}
		return toolexec.Result{ExitCode: f.ocrExit}, nil
	}
	f.t.Errorf("unexpected tool %s", name)
	return toolexec.Result{ExitCode: 127}, nil
}

func (f *fakeTools) write(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		f.t.Errorf("fake write %s: %v", path, err)
	}
}

// callsTo returns the argument lists of every invocation of name, skipping
// mkvmerge identification runs.
func (f *fakeTools) callsTo(name string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]string
	for _, call := range f.calls {
		if call[0] != name {
			continue
		}
		if name == fakeMerge && len(call) > 1 && call[1] == "-i" {
			continue
		}
		out = append(out, call[1:])
	}
	return out
}

func newTestProcessor(p policy.Policy, runner toolexec.Runner) *Processor {
	return NewProcessor(Options{
		Policy: p,
		Tools:  Tools{MkvMerge: fakeMerge, MkvExtract: fakeExtract, OCR: fakeOCR},
		Runner: runner,
		Logger: logging.NewNop(),
	})
}

func writeContainer(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(path, []byte("original container"), 0o640); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent (err=%v)", path, err)
	}
}

func contains(args []string, seq ...string) bool {
	for i := 0; i+len(seq) <= len(args); i++ {
		match := true
		for j, s := range seq {
			if args[i+j] != s {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
