package language

import "testing"

func TestBibliographic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"eng", "eng"},
		{"en", "eng"},
		{"fra", "fre"},
		{"fr", "fre"},
		{"French", "fre"},
		{"deu", "ger"},
		{"zho", "chi"},
		{"nld", "dut"},
		{" ces ", "cze"},
		{"und", "und"},
		{"xyz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Bibliographic(tt.input); got != tt.want {
				t.Errorf("Bibliographic(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"eng": "English",
		"ger": "German",
		"und": "Undetermined",
		"":    "Unknown",
		"tlh": "tlh",
	}
	for input, want := range tests {
		if got := DisplayName(input); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSuggestions(t *testing.T) {
	got := Suggestions([]string{"eng", "fr", "deu", "tlh", "jpn"})
	want := []Suggestion{{Entry: "fr", Want: "fre"}, {Entry: "deu", Want: "ger"}}
	if len(got) != len(want) {
		t.Fatalf("Suggestions = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggestions[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
