// Package preflight provides readiness checks for the filesystem paths and
// external binaries remuxer depends on.
//
// The scan command runs RunAll before touching the library and aborts when a
// library root is unusable. The doctor command prints every check along with
// the tool versions from CheckSystemDeps. The remux pipeline uses
// CheckFreeSpace before writing a new container into a scratch directory.
package preflight
