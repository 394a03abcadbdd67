package tracks

import "strings"

// Canonical codec labels as reported by mkvmerge.
const (
	CodecSubRip          = "SubRip/SRT"
	CodecSubStationAlpha = "SubStationAlpha"
	CodecASS             = "ASS"
	CodecVobSub          = "VobSub"
	CodecPGS             = "HDMV PGS"
)

// UnknownExtension is used for codecs without a sidecar mapping.
const UnknownExtension = "unknown"

// IsImageCodec reports whether the codec belongs to one of the bitmap
// subtitle families (VobSub or PGS).
func IsImageCodec(codec string) bool {
	upper := strings.ToUpper(codec)
	return strings.Contains(upper, "VOBSUB") || strings.Contains(upper, "PGS")
}

// ExtensionForCodec maps a codec label to the sidecar extension mkvextract
// should write.
func ExtensionForCodec(codec string) string {
	upper := strings.ToUpper(strings.TrimSpace(codec))
	switch {
	case upper == "":
		return UnknownExtension
	case strings.Contains(upper, "PGS"):
		return "sup"
	case strings.Contains(upper, "VOBSUB"):
		return "sub"
	case strings.Contains(upper, "SRT"), strings.Contains(upper, "SUBRIP"):
		return "srt"
	case strings.Contains(upper, "SUBSTATIONALPHA"):
		return "ssa"
	case strings.Contains(upper, "ASS"):
		return "ass"
	default:
		return UnknownExtension
	}
}

// CodecForExtension is the inverse of ExtensionForCodec for the extensions
// sidecar discovery recognises.
func CodecForExtension(ext string) (string, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "srt":
		return CodecSubRip, true
	case "ssa":
		return CodecSubStationAlpha, true
	case "ass":
		return CodecASS, true
	case "sub":
		return CodecVobSub, true
	case "sup":
		return CodecPGS, true
	default:
		return "", false
	}
}
