// Package remux runs the per-container pipeline: classify the container's
// tracks, decide what to strip, extract and OCR, demux the needed tracks,
// convert image subtitles, rebuild the container in a scratch directory and
// commit it over the original, then settle sidecars and clean up.
//
// A Processor holds the read-only policy and tool configuration and may be
// reused across files. Each call to Process builds a Session that owns the
// container path, the scratch directory, the current inventory snapshot and
// the work sets for that one file.
//
// Only two conditions abort a session with an error: the container cannot be
// probed (ErrInventoryUnavailable) or its scratch directory cannot be created
// (ErrWorkAreaUnavailable). Every other tool failure is logged and reflected
// in Result.Outcome so a library scan can move on to the next file.
package remux
