// Package export renders matched playlist rows as extended M3U8 files
// with paths relative to the export directory.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"crate/internal/logging"
	"crate/internal/match"
	"crate/internal/textutil"
)

// Result reports one playlist's export outcome.
type Result struct {
	Playlist string
	File     string
	Written  int
	Skipped  int
}

// Exporter writes M3U8 playlist files.
type Exporter struct {
	logger *slog.Logger
}

func NewExporter(logger *slog.Logger) *Exporter {
	return &Exporter{logger: logging.NewComponentLogger(logger, "export")}
}

// WritePlaylists renders one M3U8 per playlist under exportDir. Entries
// point at "../<musicRootName>/<relative path>" so players resolve them
// when the export directory sits beside the music root. Unmatched rows
// are skipped and counted; playlists with no matched rows still produce
// a header-only file so the export mirrors the manifest set.
func (e *Exporter) WritePlaylists(rows []match.Row, exportDir, musicRootName string) ([]Result, error) {
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	byPlaylist := make(map[string][]match.Row)
	var names []string
	for _, row := range rows {
		if _, ok := byPlaylist[row.Playlist]; !ok {
			names = append(names, row.Playlist)
		}
		byPlaylist[row.Playlist] = append(byPlaylist[row.Playlist], row)
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		result, err := e.writePlaylist(name, byPlaylist[name], exportDir, musicRootName)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Exporter) writePlaylist(name string, rows []match.Row, exportDir, musicRootName string) (Result, error) {
	fileName := textutil.SafeComponent(name, "Playlist") + ".m3u8"
	path := filepath.Join(exportDir, fileName)

	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")

	result := Result{Playlist: name, File: fileName}
	for _, row := range rows {
		if !row.Matched() {
			result.Skipped++
			continue
		}
		sb.WriteString(extinf(row))
		sb.WriteString(entryPath(row.FilePath, musicRootName))
		sb.WriteByte('\n')
		result.Written++
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return result, fmt.Errorf("write playlist %s: %w", fileName, err)
	}
	e.logger.Info("playlist exported",
		logging.String("playlist", name),
		logging.Int("written", result.Written),
		logging.Int("skipped", result.Skipped))
	return result, nil
}

// extinf renders the EXTINF directive. Duration prefers the manifest's
// figure, falls back to the local file's, and is -1 when neither is
// known.
func extinf(row match.Row) string {
	seconds := int64(-1)
	if ms := row.DurationMS; ms > 0 {
		seconds = (ms + 500) / 1000
	} else if ms := row.LocalDurationMS; ms > 0 {
		seconds = (ms + 500) / 1000
	}
	artist := row.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}
	title := row.Title
	if title == "" {
		title = "Unknown Title"
	}
	return fmt.Sprintf("#EXTINF:%d,%s - %s\n", seconds, artist, title)
}

// entryPath builds the relative path line. Relative paths that already
// carry the music root as their first segment are not doubled.
func entryPath(relPath, musicRootName string) string {
	normalized := filepath.ToSlash(relPath)
	if first, rest, ok := strings.Cut(normalized, "/"); ok && strings.EqualFold(first, musicRootName) {
		normalized = rest
	}
	return "../" + musicRootName + "/" + normalized
}
