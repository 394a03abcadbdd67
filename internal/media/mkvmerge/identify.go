package mkvmerge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"remuxer/internal/toolexec"
)

// DefaultBinary is used when no binary is configured.
const DefaultBinary = "mkvmerge"

// ErrNoIdentification is returned when mkvmerge produced no usable document.
var ErrNoIdentification = errors.New("mkvmerge produced no identification")

// ErrMalformed is returned when the identification document cannot be decoded.
var ErrMalformed = errors.New("malformed mkvmerge identification")

// Identification is the decoded `mkvmerge -i -F json` document.
type Identification struct {
	FileName    string       `json:"file_name"`
	Container   Container    `json:"container"`
	Tracks      []Track      `json:"tracks"`
	Attachments []Attachment `json:"attachments"`
	Chapters    []Chapter    `json:"chapters"`
	Errors      []string     `json:"errors"`
	Warnings    []string     `json:"warnings"`
}

// Container describes the probed file as a whole.
type Container struct {
	Recognized bool   `json:"recognized"`
	Supported  bool   `json:"supported"`
	Type       string `json:"type"`
}

// Track is one stream entry.
type Track struct {
	ID         int             `json:"id"`
	Type       string          `json:"type"`
	Codec      string          `json:"codec"`
	Properties TrackProperties `json:"properties"`
}

// TrackProperties carries the per-track flags and labels.
type TrackProperties struct {
	Language     string `json:"language"`
	LanguageIETF string `json:"language_ietf"`
	TrackName    string `json:"track_name"`
	CodecID      string `json:"codec_id"`
	DefaultTrack *bool  `json:"default_track"`
	ForcedTrack  *bool  `json:"forced_track"`
	FlagOriginal *bool  `json:"flag_original"`
}

// Attachment is an attached file such as a font.
type Attachment struct {
	ID          int    `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Chapter summarises one chapter edition.
type Chapter struct {
	NumEntries int `json:"num_entries"`
}

// Track types reported by mkvmerge.
const (
	TypeAudio     = "audio"
	TypeSubtitles = "subtitles"
	TypeVideo     = "video"
)

// IdentifyArgs builds the argument list for an identification run.
func IdentifyArgs(path string) []string {
	return []string{"-i", "-F", "json", path}
}

// Identify probes path and decodes the JSON document. A non-zero exit, empty
// output, a JSON null, or undecodable output is an error.
func Identify(ctx context.Context, runner toolexec.Runner, binary, path string) (Identification, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	if strings.TrimSpace(path) == "" {
		return Identification{}, errors.New("mkvmerge identify: empty path")
	}
	if runner == nil {
		runner = toolexec.ExecRunner{}
	}

	result, err := runner.Run(ctx, binary, IdentifyArgs(path)...)
	if err != nil {
		return Identification{}, fmt.Errorf("mkvmerge identify: %w", err)
	}
	// mkvmerge exits 1 for warnings and 2 for errors.
	if result.ExitCode > 1 {
		return Identification{}, fmt.Errorf("mkvmerge identify: exit status %d: %s", result.ExitCode, result.Summary(400))
	}
	return Parse([]byte(result.Stdout))
}

// Parse decodes an identification document.
func Parse(data []byte) (Identification, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Identification{}, ErrNoIdentification
	}
	var ident Identification
	if err := json.Unmarshal(trimmed, &ident); err != nil {
		return Identification{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return ident, nil
}
