// Package history persists the outcome of every processed container in a
// SQLite ledger.
//
// The library scanner consults the ledger to skip files whose size and
// modification time have not changed since a recorded outcome, and the CLI
// lists and clears entries. Open applies WAL mode and a busy timeout, and
// writes retry on SQLITE_BUSY so a concurrent `remuxer history` never fails a
// scan.
package history
