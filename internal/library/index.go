package library

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var indexHeader = []string{
	"file_path", "artist_raw", "title_raw", "album_raw",
	"artist_key", "title_key", "duration_ms",
}

// WriteIndex persists the inventory snapshot as CSV, overwriting any
// previous snapshot. The snapshot is an audit artifact: a from-scratch
// run never reads it back.
func WriteIndex(path string, tracks []Track) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(indexHeader); err != nil {
		return fmt.Errorf("write index header: %w", err)
	}
	for _, track := range tracks {
		duration := ""
		if track.DurationMS > 0 {
			duration = strconv.FormatInt(track.DurationMS, 10)
		}
		row := []string{
			track.RelativePath, track.Artist, track.Title, track.Album,
			track.ArtistKey, track.TitleKey, duration,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write index row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush index: %w", err)
	}
	return file.Close()
}

// ReadIndex loads a previously written snapshot.
func ReadIndex(path string) ([]Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	tracks := make([]Track, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(indexHeader) {
			return nil, fmt.Errorf("index row has %d columns, want %d", len(row), len(indexHeader))
		}
		var duration int64
		if row[6] != "" {
			duration, err = strconv.ParseInt(row[6], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse duration %q: %w", row[6], err)
			}
		}
		tracks = append(tracks, Track{
			RelativePath: row[0],
			Artist:       row[1],
			Title:        row[2],
			Album:        row[3],
			ArtistKey:    row[4],
			TitleKey:     row[5],
			DurationMS:   duration,
		})
	}
	return tracks, nil
}
