// Package services defines shared helpers consumed by the remux pipeline and
// the library scanner.
//
// Key responsibilities:
//   - Context helpers that stamp the container path, stage name, and scan run
//     identifier for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the ledger statuses recorded for each file (failed vs invalid).
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
