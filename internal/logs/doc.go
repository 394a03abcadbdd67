// Package logs reads the daily remuxer log files for the `remuxer logs`
// command.
//
// Tail returns the last N lines with bounded memory and the offset reached,
// so follow mode can poll for lines appended after that offset until the
// context is cancelled.
package logs
