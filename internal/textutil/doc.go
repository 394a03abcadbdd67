// Package textutil provides filename sanitization helpers used when track
// names are embedded in sidecar file names.
package textutil
