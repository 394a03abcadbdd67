package tracks

import "testing"

func TestExtensionForCodec(t *testing.T) {
	tests := []struct {
		codec string
		want  string
	}{
		{"SubRip/SRT", "srt"},
		{"subrip", "srt"},
		{"SubStationAlpha", "ssa"},
		{"ASS", "ass"},
		{"VobSub", "sub"},
		{"HDMV PGS", "sup"},
		{"hdmv pgs", "sup"},
		{"AAC", UnknownExtension},
		{"", UnknownExtension},
	}
	for _, tt := range tests {
		if got := ExtensionForCodec(tt.codec); got != tt.want {
			t.Errorf("ExtensionForCodec(%q) = %q, want %q", tt.codec, got, tt.want)
		}
	}
}

func TestCodecForExtensionRoundTrip(t *testing.T) {
	for _, ext := range []string{"srt", "ssa", "ass", "sub", "sup"} {
		codec, ok := CodecForExtension(ext)
		if !ok {
			t.Fatalf("CodecForExtension(%q) not recognised", ext)
		}
		if got := ExtensionForCodec(codec); got != ext {
			t.Errorf("extension %q -> codec %q -> %q", ext, codec, got)
		}
	}
	if _, ok := CodecForExtension("idx"); ok {
		t.Error("expected idx to be rejected")
	}
}

func TestIsImageCodec(t *testing.T) {
	tests := []struct {
		codec string
		want  bool
	}{
		{"HDMV PGS", true},
		{"VobSub", true},
		{"vobsub", true},
		{"SubRip/SRT", false},
		{"ASS", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsImageCodec(tt.codec); got != tt.want {
			t.Errorf("IsImageCodec(%q) = %v, want %v", tt.codec, got, tt.want)
		}
	}
}

func TestTriState(t *testing.T) {
	yes, no := true, false
	if FromBool(nil) != Unknown {
		t.Error("nil should map to Unknown")
	}
	if FromBool(&yes) != True || !FromBool(&yes).IsTrue() {
		t.Error("true should map to True")
	}
	if FromBool(&no) != False || FromBool(&no).IsTrue() {
		t.Error("false should map to False")
	}
	if Unknown.IsTrue() {
		t.Error("Unknown must not count as true")
	}

	for _, want := range []TriState{Unknown, True, False} {
		text, err := want.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", want, err)
		}
		var got TriState
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != want {
			t.Errorf("round trip of %v gave %v", want, got)
		}
	}
	var bad TriState
	if err := bad.UnmarshalText([]byte("maybe")); err == nil {
		t.Error("expected error for unknown flag value")
	}
}
