// Package tracks models the audio and subtitle streams a container holds and
// the standalone sidecar files extracted from it.
//
// Besides the Track value type it owns the two fixed tables the pipeline
// depends on: codec label to sidecar extension (and back), and the sidecar
// naming convention <base>.<id>.<language>.<name>.<ext> that lets a later run
// recognise files written by an earlier one.
package tracks
