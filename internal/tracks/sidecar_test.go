package tracks

import "testing"

func TestSanitizeName(t *testing.T) {
	if got := SanitizeName(""); got != "" {
		t.Fatalf("empty name = %q, want empty", got)
	}
	if got := SanitizeName("Director: Commentary"); got != ".Director_ Commentary" {
		t.Fatalf("got %q", got)
	}
}

func TestSidecarNameRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		track Track
	}{
		{"plain", Track{ID: 3, Kind: Subtitle, Codec: CodecSubRip, Language: "eng", Name: SanitizeName("English")}},
		{"empty name", Track{ID: 0, Kind: Subtitle, Codec: CodecPGS, Language: "eng"}},
		{"dotted name", Track{ID: 12, Kind: Subtitle, Codec: CodecVobSub, Language: "fre", Name: SanitizeName("Dr. Who v1.2")}},
		{"empty language", Track{ID: 4, Kind: Subtitle, Codec: CodecASS, Language: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := SidecarFileNameFor("Movie.2020", tt.track)
			got, ok := ParseSidecarName("Movie.2020", file)
			if !ok {
				t.Fatalf("ParseSidecarName(%q) rejected", file)
			}
			if got.ID != tt.track.ID || got.Language != tt.track.Language || got.Name != tt.track.Name || got.Codec != tt.track.Codec {
				t.Fatalf("round trip mismatch: %q -> %+v, want %+v", file, got, tt.track)
			}
			if got.Kind != Subtitle {
				t.Fatalf("expected subtitle kind, got %q", got.Kind)
			}
		})
	}
}

func TestSidecarFileNameLayout(t *testing.T) {
	got := SidecarFileName("movie", 2, "eng", ".SDH", "srt")
	if got != "movie.2.eng..SDH.srt" {
		t.Fatalf("got %q", got)
	}
}

func TestParseSidecarNameRejects(t *testing.T) {
	for _, file := range []string{
		"movie.mkv",
		"other.2.eng..srt",
		"movie.x.eng..srt",
		"movie.-1.eng..srt",
		"movie.2.eng..idx",
		"movie.2.eng",
		"movie.2",
	} {
		if _, ok := ParseSidecarName("movie", file); ok {
			t.Errorf("ParseSidecarName(%q) accepted", file)
		}
	}
}

func TestSidecarOwnerPrefersLongestBase(t *testing.T) {
	bases := []string{"movie", "movie.2020"}
	tests := []struct {
		file string
		want string
		ok   bool
	}{
		{"movie.2020.1.eng..srt", "movie.2020", true},
		{"movie.3.eng..srt", "movie", true},
		{"movie.2020.mkv", "", false},
		{"other.1.eng..srt", "", false},
	}
	for _, tt := range tests {
		got, ok := SidecarOwner(tt.file, bases)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SidecarOwner(%q) = %q, %v; want %q, %v", tt.file, got, ok, tt.want, tt.ok)
		}
	}
	if !IsContainerFile("Movie.2020.MKV") || IsContainerFile("movie.2.eng..srt") {
		t.Error("IsContainerFile misclassified")
	}
}

func TestContainerBase(t *testing.T) {
	if got := ContainerBase("/media/Movie.2020.mkv"); got != "Movie.2020" {
		t.Fatalf("got %q", got)
	}
}

func TestInventorySidecarLookups(t *testing.T) {
	inv := Inventory{
		Path: "/media/movie.mkv",
		Sidecars: []Track{
			{ID: 2, Kind: Subtitle, Codec: CodecPGS, FilePath: "/media/movie.2.eng..sup"},
			{ID: 3, Kind: Subtitle, Codec: CodecSubRip, FilePath: "/media/movie.3.eng..srt"},
		},
	}
	if !inv.HasSidecar(2, "sup") || inv.HasSidecar(2, "srt") {
		t.Fatal("unexpected HasSidecar result for id 2")
	}
	if inv.HasTextSidecar(2) || !inv.HasTextSidecar(3) {
		t.Fatal("unexpected HasTextSidecar result")
	}
}
