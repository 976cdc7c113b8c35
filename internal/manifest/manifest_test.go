package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"crate/internal/logging"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const exportHeader = "Track URI,Track Name,Artist Name(s),Album Name,Duration (ms)\n"

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "road_trip.csv", exportHeader+
		"uri1,Go Your Own Way,Fleetwood Mac,Rumours,218000\n"+
		"uri2,Take It Easy,Eagles;Glenn Frey,Eagles,211000\n")
	writeManifest(t, dir, "liked_songs.csv", exportHeader+
		"uri3,Dreams,Fleetwood Mac,Rumours,257000\n")

	records, err := NewLoader(logging.NewNop()).LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	// Files load in sorted filename order: liked_songs before road_trip.
	first := records[0]
	if first.Playlist != "liked songs" {
		t.Errorf("playlist = %q", first.Playlist)
	}
	if !first.Liked || first.Top {
		t.Errorf("provenance flags = liked %v top %v", first.Liked, first.Top)
	}
	if first.DurationMS != 257000 {
		t.Errorf("duration = %d", first.DurationMS)
	}

	eagles := records[2]
	if eagles.Artist != "Eagles" {
		t.Errorf("primary artist = %q, want first semicolon entry", eagles.Artist)
	}
	if eagles.ArtistKey != "eagles" || eagles.TitleKey != "take it easy" {
		t.Errorf("keys = %q / %q", eagles.ArtistKey, eagles.TitleKey)
	}
	if eagles.Liked || eagles.Top {
		t.Error("regular playlist should carry no provenance flags")
	}
}

func TestLoadDirTopSongsFlag(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "your_top_songs_2025.csv", exportHeader+
		"uri,Song,Artist,Album,100\n")

	records, err := NewLoader(logging.NewNop()).LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	if !records[0].Top || records[0].Liked {
		t.Errorf("provenance flags = %+v", records[0])
	}
	if records[0].Playlist != "your top songs 2025" {
		t.Errorf("playlist = %q", records[0].Playlist)
	}
}

func TestLoadDirSkipsBlankAndMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "mixed.csv", exportHeader+
		"uri1,Good Track,Some Artist,Album,123456\n"+
		",,,,\n"+
		"uri2,No Duration,Other Artist,,not-a-number\n")

	records, err := NewLoader(logging.NewNop()).LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[1].DurationMS != 0 {
		t.Errorf("unparseable duration should stay absent, got %d", records[1].DurationMS)
	}
}

func TestLoadDirMissing(t *testing.T) {
	records, err := NewLoader(logging.NewNop()).LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatal(err)
	}
	if records != nil {
		t.Errorf("got %d records for missing dir", len(records))
	}
}

func TestFriendlyName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/road_trip.csv", "road trip"},
		{"liked_songs.csv", "liked songs"},
		{"Already Spaced.csv", "Already Spaced"},
	}
	for _, tt := range tests {
		if got := FriendlyName(tt.path); got != tt.want {
			t.Errorf("FriendlyName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPrimaryArtist(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"Eagles;Glenn Frey", "Eagles"},
		{" Solo Artist ", "Solo Artist"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PrimaryArtist(tt.field); got != tt.want {
			t.Errorf("PrimaryArtist(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
