package reports

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"crate/internal/library"
	"crate/internal/logging"
	"crate/internal/match"
)

func fixedWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w := NewWriter(dir, logging.NewNop())
	w.now = func() time.Time {
		return time.Date(2026, 8, 27, 14, 30, 5, 0, time.UTC)
	}
	return w, dir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteShoppingList(t *testing.T) {
	w, dir := fixedWriter(t)
	items := []match.ShoppingItem{
		{
			Artist:        "Eagles",
			Title:         "Take It Easy",
			Album:         "Eagles",
			DurationMS:    211000,
			Playlists:     []string{"liked songs", "road trip"},
			PlaylistCount: 2,
			Liked:         true,
		},
		{Artist: "Fleetwood Mac", Title: "Dreams", Playlists: []string{"road trip"}, PlaylistCount: 1},
	}

	path, err := w.WriteShoppingList(items)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "shopping_list_2026-08-27-14-30-05.csv")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][4] != "Playlists_Count" || rows[0][7] != "Is_Top_Songs" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][5] != "liked songs; road trip" {
		t.Errorf("playlists cell = %q", rows[1][5])
	}
	if rows[1][6] != "true" {
		t.Errorf("liked cell = %q", rows[1][6])
	}
	if rows[2][3] != "" {
		t.Errorf("absent duration should render empty, got %q", rows[2][3])
	}
}

func TestWriteShoppingListEmpty(t *testing.T) {
	w, dir := fixedWriter(t)
	path, err := w.WriteShoppingList(nil)
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("empty report still wrote %d files", len(entries))
	}
}

func TestWriteOrphans(t *testing.T) {
	w, _ := fixedWriter(t)
	tracks := []library.Track{
		{RelativePath: "Queen/News of the World/We Will Rock You.mp3", Artist: "Queen", Title: "We Will Rock You", Album: "News of the World", DurationMS: 122000},
	}

	path, err := w.WriteOrphans(tracks)
	if err != nil {
		t.Fatal(err)
	}
	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][4] != "file_path" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][4] != "Queen/News of the World/We Will Rock You.mp3" {
		t.Errorf("file path cell = %q", rows[1][4])
	}
	if rows[1][3] != "122000" {
		t.Errorf("duration cell = %q", rows[1][3])
	}
}
