package preflight

import (
	"context"

	"remuxer/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Path   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config: the state and
// log directories plus every library root.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	for _, root := range cfg.Library.Roots {
		if ctx.Err() != nil {
			break
		}
		results = append(results, CheckDirectoryAccess("Library root", root))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
