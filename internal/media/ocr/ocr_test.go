package ocr

import (
	"reflect"
	"testing"
)

func TestConvertContract(t *testing.T) {
	in := "/s/movie.2.eng..Full Subs.sup"
	if got, want := ConvertArgs(in), []string{"/convert", in, "subrip"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ConvertArgs = %v, want %v", got, want)
	}
	if got := OutputPath(in); got != "/s/movie.2.eng..Full Subs.srt" {
		t.Fatalf("OutputPath = %q", got)
	}
}
