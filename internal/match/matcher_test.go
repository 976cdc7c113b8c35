package match

import (
	"testing"

	"crate/internal/library"
	"crate/internal/manifest"
)

const testToleranceMS = 3000

func record(playlist, artist, title string, durationMS int64) manifest.Record {
	return manifest.Record{
		Playlist:   playlist,
		Artist:     artist,
		Title:      title,
		DurationMS: durationMS,
		ArtistKey:  keyFor(artist),
		TitleKey:   keyFor(title),
	}
}

func track(relPath, artist, title string, durationMS int64) library.Track {
	return library.Track{
		RelativePath: relPath,
		Artist:       artist,
		Title:        title,
		ArtistKey:    keyFor(artist),
		TitleKey:     keyFor(title),
		DurationMS:   durationMS,
	}
}

// keyFor is a stand-in canonicalizer: tests here pin join semantics,
// not key derivation.
func keyFor(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func TestMatchJoinsOnKeys(t *testing.T) {
	records := []manifest.Record{
		record("road trip", "Fleetwood Mac", "dreams", 257000),
		record("road trip", "Eagles", "take it easy", 211000),
	}
	inventory := []library.Track{
		track("Fleetwood Mac/Rumours/02 Dreams.flac", "FLEETWOOD MAC", "Dreams", 256500),
	}

	rows := Match(records, inventory, testToleranceMS)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if !rows[0].Matched() {
		t.Fatal("dreams should match case-insensitively")
	}
	if rows[0].FilePath != "Fleetwood Mac/Rumours/02 Dreams.flac" {
		t.Errorf("file path = %q", rows[0].FilePath)
	}
	if rows[0].LocalDurationMS != 256500 {
		t.Errorf("local duration = %d", rows[0].LocalDurationMS)
	}
	if rows[1].Matched() {
		t.Error("take it easy has no local file and should stay unmatched")
	}
}

func TestMatchDurationTolerance(t *testing.T) {
	tests := []struct {
		name      string
		recordMS  int64
		trackMS   int64
		wantMatch bool
	}{
		{"within tolerance", 200000, 202500, true},
		{"exactly at tolerance", 200000, 203000, true},
		{"beyond tolerance", 200000, 210000, false},
		{"manifest duration absent", 0, 210000, true},
		{"local duration absent", 200000, 0, true},
		{"both absent", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Match(
				[]manifest.Record{record("p", "artist", "title", tt.recordMS)},
				[]library.Track{track("a/t.mp3", "artist", "title", tt.trackMS)},
				testToleranceMS,
			)
			if rows[0].Matched() != tt.wantMatch {
				t.Errorf("matched = %v, want %v", rows[0].Matched(), tt.wantMatch)
			}
			if !tt.wantMatch && rows[0].LocalDurationMS != 0 {
				t.Errorf("rejected row kept local duration %d", rows[0].LocalDurationMS)
			}
		})
	}
}

func TestMatchEmptyInventory(t *testing.T) {
	records := []manifest.Record{
		record("p", "a", "one", 0),
		record("p", "a", "two", 0),
	}
	rows := Match(records, nil, testToleranceMS)
	if len(rows) != len(records) {
		t.Fatalf("got %d rows, want %d", len(rows), len(records))
	}
	for _, row := range rows {
		if row.Matched() {
			t.Errorf("row %q matched against empty inventory", row.Title)
		}
	}
}

func TestMatchDuplicateKeyPrefersFirstPath(t *testing.T) {
	inventory := []library.Track{
		track("Various/Dreams (live).mp3", "artist", "dreams", 0),
		track("Artist/Album/Dreams.flac", "artist", "dreams", 0),
	}
	rows := Match([]manifest.Record{record("p", "artist", "dreams", 0)}, inventory, testToleranceMS)
	if rows[0].FilePath != "Artist/Album/Dreams.flac" {
		t.Errorf("file path = %q, want lexicographically first", rows[0].FilePath)
	}
}
