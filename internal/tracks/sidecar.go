package tracks

import (
	"path/filepath"
	"strconv"
	"strings"

	"remuxer/internal/textutil"
)

// nameMarker prefixes non-empty track names in sidecar file names.
const nameMarker = "."

// SanitizeName turns a container track name into the form used inside sidecar
// file names. Empty names stay empty.
func SanitizeName(name string) string {
	cleaned := textutil.SanitizeFileName(name)
	if cleaned == "" {
		return ""
	}
	return nameMarker + cleaned
}

// ContainerBase returns the container file name without directory or extension.
func ContainerBase(containerPath string) string {
	base := filepath.Base(containerPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SidecarFileName builds <base>.<id>.<language>.<name>.<ext>.
func SidecarFileName(containerBase string, id int, language, name, ext string) string {
	return containerBase + "." + strconv.Itoa(id) + "." + language + "." + name + "." + ext
}

// SidecarFileNameFor builds the sidecar file name for a container track, picking
// the extension from its codec.
func SidecarFileNameFor(containerBase string, t Track) string {
	return SidecarFileName(containerBase, t.ID, t.Language, t.Name, ExtensionForCodec(t.Codec))
}

// ParseSidecarName recognises a sidecar file written for the given container.
// The name field spans everything between the language and the final dot, so
// track names containing periods survive the round trip. Files with an
// unrecognised extension are rejected.
func ParseSidecarName(containerBase, fileName string) (Track, bool) {
	prefix := containerBase + "."
	if !strings.HasPrefix(fileName, prefix) {
		return Track{}, false
	}
	rest := strings.TrimPrefix(fileName, prefix)

	idPart, rest, ok := strings.Cut(rest, ".")
	if !ok {
		return Track{}, false
	}
	id, err := strconv.Atoi(idPart)
	if err != nil || id < 0 {
		return Track{}, false
	}
	language, rest, ok := strings.Cut(rest, ".")
	if !ok {
		return Track{}, false
	}
	dot := strings.LastIndex(rest, ".")
	if dot < 0 {
		return Track{}, false
	}
	name, ext := rest[:dot], rest[dot+1:]
	codec, ok := CodecForExtension(ext)
	if !ok {
		return Track{}, false
	}
	return Track{
		ID:       id,
		Kind:     Subtitle,
		Codec:    codec,
		Language: language,
		Name:     name,
	}, true
}

// containerExtensions are the Matroska file extensions a sidecar can belong to.
var containerExtensions = map[string]struct{}{
	"mkv":  {},
	"mk3d": {},
	"mka":  {},
	"webm": {},
}

// IsContainerFile reports whether fileName carries a Matroska extension.
func IsContainerFile(fileName string) bool {
	_, ok := containerExtensions[strings.ToLower(extOf(fileName))]
	return ok
}

// SidecarOwner returns the container base that fileName belongs to. When
// containers such as movie.mkv and movie.2020.mkv share a directory, the
// longest base under which the name parses wins.
func SidecarOwner(fileName string, bases []string) (string, bool) {
	owner, found := "", false
	for _, base := range bases {
		if _, ok := ParseSidecarName(base, fileName); !ok {
			continue
		}
		if !found || len(base) > len(owner) {
			owner, found = base, true
		}
	}
	return owner, found
}

func extOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
