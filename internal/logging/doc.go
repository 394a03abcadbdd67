// Package logging assembles structured slog loggers and formatting helpers used
// across remuxer.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the container path, stage, and scan run id. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
