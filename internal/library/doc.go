// Package library discovers containers under the configured roots and runs
// the remux pipeline over them one file at a time.
//
// A Catalog answers paged queries the way a media server's item API does.
// The Scanner walks it page by page, reports progress as a percentage,
// honours cancellation between files, skips files the history ledger already
// settled, and records every outcome. AcquireScanLock keeps two scans from
// working the same library at once.
package library
