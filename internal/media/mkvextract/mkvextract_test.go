package mkvextract

import (
	"reflect"
	"testing"
)

func TestTracksArgs(t *testing.T) {
	got := TracksArgs("/m/movie.mkv", []Target{
		{TrackID: 3, Output: "/s/movie.3.eng..srt"},
		{TrackID: 5, Output: "/s/movie.5.eng..sup"},
		{TrackID: 3, Output: "/s/other.srt"},
	})
	want := []string{"/m/movie.mkv", "tracks", "3:/s/movie.3.eng..srt", "5:/s/movie.5.eng..sup"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TracksArgs = %v, want %v", got, want)
	}
}
