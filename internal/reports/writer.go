// Package reports writes timestamped shopping-list and orphaned-track
// CSV reports.
package reports

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"crate/internal/library"
	"crate/internal/logging"
	"crate/internal/match"
)

// timestampLayout names report files down to the second so repeated
// runs never clobber each other.
const timestampLayout = "2006-01-02-15-04-05"

// Writer emits report CSVs into a single reports directory.
type Writer struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "reports"),
		now:    time.Now,
	}
}

// WriteShoppingList saves the missing-track report and returns its
// path. An empty list writes nothing and returns "".
func (w *Writer) WriteShoppingList(items []match.ShoppingItem) (string, error) {
	if len(items) == 0 {
		w.logger.Info("no missing tracks, shopping list skipped")
		return "", nil
	}

	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, []string{"Artist", "Title", "Album", "Duration_ms", "Playlists_Count", "Playlists", "Is_Liked", "Is_Top_Songs"})
	for _, item := range items {
		rows = append(rows, []string{
			item.Artist,
			item.Title,
			item.Album,
			formatDuration(item.DurationMS),
			strconv.Itoa(item.PlaylistCount),
			strings.Join(item.Playlists, "; "),
			strconv.FormatBool(item.Liked),
			strconv.FormatBool(item.Top),
		})
	}

	path, err := w.write("shopping_list", rows)
	if err != nil {
		return "", err
	}
	w.logger.Info("shopping list saved", logging.String("path", path), logging.Int("tracks", len(items)))
	return path, nil
}

// WriteOrphans saves the orphaned-track report and returns its path.
// An empty list writes nothing and returns "".
func (w *Writer) WriteOrphans(tracks []library.Track) (string, error) {
	if len(tracks) == 0 {
		w.logger.Info("no orphaned tracks, report skipped")
		return "", nil
	}

	rows := make([][]string, 0, len(tracks)+1)
	rows = append(rows, []string{"Artist", "Title", "Album", "Duration_ms", "file_path"})
	for _, track := range tracks {
		rows = append(rows, []string{
			track.Artist,
			track.Title,
			track.Album,
			formatDuration(track.DurationMS),
			track.RelativePath,
		})
	}

	path, err := w.write("orphaned_tracks", rows)
	if err != nil {
		return "", err
	}
	w.logger.Info("orphaned-track report saved", logging.String("path", path), logging.Int("tracks", len(tracks)))
	return path, nil
}

func (w *Writer) write(prefix string, rows [][]string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s.csv", prefix, w.now().Format(timestampLayout))
	path := filepath.Join(w.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report %s: %w", name, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	return path, nil
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return strconv.FormatInt(ms, 10)
}
