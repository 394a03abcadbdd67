package mkvmerge

import (
	"strconv"
	"strings"
)

// CompletionMarker is printed by mkvmerge after a successful multiplex.
const CompletionMarker = "multiplexing took"

// MuxRequest describes one rebuild of a container.
type MuxRequest struct {
	Output           string
	Input            string
	ExcludeAudio     []int
	ExcludeSubtitles []int
	Append           []string
}

// MuxArgs builds `-o <out> [-a !ids] [-s !ids] <in> [extra...]`. Exclusion
// lists are only emitted when non-empty.
func MuxArgs(req MuxRequest) []string {
	args := []string{"-o", req.Output}
	if len(req.ExcludeAudio) > 0 {
		args = append(args, "-a", "!"+joinIDs(req.ExcludeAudio))
	}
	if len(req.ExcludeSubtitles) > 0 {
		args = append(args, "-s", "!"+joinIDs(req.ExcludeSubtitles))
	}
	args = append(args, req.Input)
	args = append(args, req.Append...)
	return args
}

// MuxSucceeded applies the mux success rule: exit code 0 and the completion
// marker present in stdout.
func MuxSucceeded(exitCode int, stdout string) bool {
	return exitCode == 0 && strings.Contains(strings.ToLower(stdout), CompletionMarker)
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
