package language

import "strings"

type entry struct {
	bib     string   // ISO 639-2/B, as written by mkvmerge
	term    string   // ISO 639-2/T when it differs
	code2   string   // ISO 639-1
	display string
	words   []string
}

var languages = []entry{
	{"eng", "", "en", "English", []string{"english"}},
	{"spa", "", "es", "Spanish", []string{"spanish", "castilian"}},
	{"fre", "fra", "fr", "French", []string{"french"}},
	{"ger", "deu", "de", "German", []string{"german"}},
	{"ita", "", "it", "Italian", []string{"italian"}},
	{"por", "", "pt", "Portuguese", []string{"portuguese"}},
	{"jpn", "", "ja", "Japanese", []string{"japanese"}},
	{"kor", "", "ko", "Korean", []string{"korean"}},
	{"chi", "zho", "zh", "Chinese", []string{"chinese"}},
	{"rus", "", "ru", "Russian", []string{"russian"}},
	{"ara", "", "ar", "Arabic", []string{"arabic"}},
	{"hin", "", "hi", "Hindi", []string{"hindi"}},
	{"dut", "nld", "nl", "Dutch", []string{"dutch", "flemish"}},
	{"pol", "", "pl", "Polish", []string{"polish"}},
	{"swe", "", "sv", "Swedish", []string{"swedish"}},
	{"dan", "", "da", "Danish", []string{"danish"}},
	{"nor", "", "no", "Norwegian", []string{"norwegian"}},
	{"fin", "", "fi", "Finnish", []string{"finnish"}},
	{"cze", "ces", "cs", "Czech", []string{"czech"}},
	{"gre", "ell", "el", "Greek", []string{"greek"}},
	{"hun", "", "hu", "Hungarian", []string{"hungarian"}},
	{"tur", "", "tr", "Turkish", []string{"turkish"}},
	{"heb", "", "he", "Hebrew", []string{"hebrew"}},
	{"tha", "", "th", "Thai", []string{"thai"}},
	{"und", "", "", "Undetermined", nil},
}

var index = func() map[string]*entry {
	m := make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		for _, key := range append([]string{e.bib, e.term, e.code2}, e.words...) {
			if key != "" {
				m[key] = e
			}
		}
	}
	return m
}()

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	return index[code]
}

// Bibliographic returns the ISO 639-2/B code for any recognized code or
// English language name, or "" when the input is unknown.
func Bibliographic(code string) string {
	if e := lookup(code); e != nil {
		return e.bib
	}
	return ""
}

// DisplayName returns a human-readable name for a track language tag.
// Unrecognized tags are returned unchanged; an empty tag is "Unknown".
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if e := lookup(trimmed); e != nil {
		return e.display
	}
	return trimmed
}

// Suggestion pairs a whitelist entry with the tag mkvmerge would report.
type Suggestion struct {
	Entry string
	Want  string
}

// Suggestions returns whitelist entries that do not match the tag mkvmerge
// writes for that language, in input order.
func Suggestions(whitelist []string) []Suggestion {
	var out []Suggestion
	for _, code := range whitelist {
		want := Bibliographic(code)
		if want == "" || want == code {
			continue
		}
		out = append(out, Suggestion{Entry: code, Want: want})
	}
	return out
}
