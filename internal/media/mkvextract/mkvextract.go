// Package mkvextract builds the batched demux invocation used to write
// container tracks out as sidecar files.
package mkvextract

import "strconv"

// DefaultBinary is used when no binary is configured.
const DefaultBinary = "mkvextract"

// Target maps one container track to its output file.
type Target struct {
	TrackID int
	Output  string
}

// TracksArgs builds `<path> tracks <id>:<out> ...`. Each track id appears at
// most once; later duplicates are dropped.
func TracksArgs(path string, targets []Target) []string {
	args := []string{path, "tracks"}
	seen := make(map[int]struct{}, len(targets))
	for _, t := range targets {
		if _, ok := seen[t.TrackID]; ok {
			continue
		}
		seen[t.TrackID] = struct{}{}
		args = append(args, strconv.Itoa(t.TrackID)+":"+t.Output)
	}
	return args
}
