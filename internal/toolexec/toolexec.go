// Package toolexec runs external command-line tools and captures their exit
// code and output so callers can apply their own success rules.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// Result is the observable outcome of one tool invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Succeeded reports a zero exit code.
func (r Result) Succeeded() bool { return r.ExitCode == 0 }

// Runner launches a tool and waits for it to exit. A non-zero exit is reported
// through Result.ExitCode; the error is reserved for failures to start the
// process or to wait for it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) (Result, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct{}

// Run executes name with args, capturing stdout and stderr separately.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if strings.TrimSpace(name) == "" {
		return Result{}, errors.New("toolexec: empty command")
	}
	var stdout, stderr bytes.Buffer
	cmd := commandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err == nil {
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode == -1 {
			// Killed by a signal.
			result.ExitCode = 1
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
		}
		return result, nil
	}
	return result, fmt.Errorf("run %s: %w", name, err)
}

// Summary condenses captured output for log fields.
func (r Result) Summary(limit int) string {
	out := strings.TrimSpace(r.Stderr)
	if out == "" {
		out = strings.TrimSpace(r.Stdout)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit] + "..."
	}
	return out
}
