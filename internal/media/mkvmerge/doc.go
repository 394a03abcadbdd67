// Package mkvmerge wraps the two mkvmerge invocations remuxer relies on:
// identification (`mkvmerge -i -F json`) and multiplexing (`mkvmerge -o`).
//
// The identification model covers the fields the pipeline reads from the
// JSON schema. Flags that may be absent are pointers so callers can tell
// "unset" from "false".
package mkvmerge
