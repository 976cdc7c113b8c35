package library

import (
	"path/filepath"
	"testing"
)

func TestIndexRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library_index.csv")
	tracks := []Track{
		{
			RelativePath: "ABBA/Arrival/Dancing Queen.flac",
			Artist:       "ABBA",
			Title:        "Dancing Queen",
			Album:        "Arrival",
			ArtistKey:    "abba",
			TitleKey:     "dancing queen",
			DurationMS:   230000,
		},
		{
			RelativePath: "Unknown/track.mp3",
			Artist:       "Unknown",
			Title:        "track",
			ArtistKey:    "unknown",
			TitleKey:     "track",
		},
	}

	if err := WriteIndex(path, tracks); err != nil {
		t.Fatal(err)
	}
	got, err := ReadIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(tracks) {
		t.Fatalf("got %d tracks, want %d", len(got), len(tracks))
	}
	for i := range tracks {
		if got[i] != tracks[i] {
			t.Errorf("track %d = %+v, want %+v", i, got[i], tracks[i])
		}
	}
}

func TestWriteIndexOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library_index.csv")
	if err := WriteIndex(path, []Track{{RelativePath: "a.mp3", ArtistKey: "a", TitleKey: "b"}}); err != nil {
		t.Fatal(err)
	}
	if err := WriteIndex(path, nil); err != nil {
		t.Fatal(err)
	}
	got, err := ReadIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d tracks after overwrite, want 0", len(got))
	}
}
