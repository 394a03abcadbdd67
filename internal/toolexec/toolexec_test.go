package toolexec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"
)

func stubCommand(t *testing.T, mode string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string{name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "TOOLEXEC_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() { commandContext = original })
	return &captured
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	captured := stubCommand(t, "success")
	result, err := ExecRunner{}.Run(context.Background(), "mkvmerge", "-i", "movie.mkv")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("expected success, got exit %d", result.ExitCode)
	}
	if result.Stdout != "helper stdout\n" || result.Stderr != "helper stderr\n" {
		t.Fatalf("unexpected output: %q / %q", result.Stdout, result.Stderr)
	}
	if got := *captured; len(got) != 3 || got[0] != "mkvmerge" || got[2] != "movie.mkv" {
		t.Fatalf("unexpected command: %v", got)
	}
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	stubCommand(t, "exit3")
	result, err := ExecRunner{}.Run(context.Background(), "mkvextract")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if result.ExitCode != 3 || result.Succeeded() {
		t.Fatalf("exit code = %d, want 3", result.ExitCode)
	}
	if got := result.Summary(0); got != "failure detail" {
		t.Fatalf("summary = %q", got)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	if _, err := (ExecRunner{}).Run(context.Background(), "definitely-not-a-real-binary-xyz"); err == nil {
		t.Fatal("expected error for missing binary")
	}
	if _, err := (ExecRunner{}).Run(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestSummaryTruncates(t *testing.T) {
	r := Result{Stdout: "abcdefghij"}
	if got := r.Summary(4); got != "abcd..." {
		t.Fatalf("summary = %q", got)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch mode := os.Getenv("TOOLEXEC_HELPER_MODE"); mode {
	case "success":
		fmt.Fprintln(os.Stdout, "helper stdout")
		fmt.Fprintln(os.Stderr, "helper stderr")
		os.Exit(0)
	default:
		code := 1
		if len(mode) > 4 {
			if n, err := strconv.Atoi(mode[4:]); err == nil {
				code = n
			}
		}
		fmt.Fprint(os.Stderr, "failure detail")
		os.Exit(code)
	}
}
