// Package main hosts the remuxer CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, builds the logger and the
// tool runner once per invocation, and hands the work to the internal
// packages: library scans and single-file sessions go through
// internal/library and internal/remux, the processed-file ledger through
// internal/history, and environment checks through internal/preflight.
//
// Keep this package lean. New behaviour belongs in the internal packages and
// is surfaced here through dedicated commands or flags.
package main
