package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"crate/internal/logging"
	"crate/internal/textutil"
)

// Record is one playlist-row from an exported manifest. A track
// appearing in several playlists yields one Record per playlist.
type Record struct {
	Playlist string
	// Artist is the primary artist: the first semicolon-delimited
	// entry of the export's artist field.
	Artist string
	Title  string
	Album  string
	// DurationMS is 0 when the export carried no duration.
	DurationMS int64
	// Liked and Top mark snapshot provenance ("liked songs" and
	// "top songs" exports respectively).
	Liked bool
	Top   bool

	ArtistKey string
	TitleKey  string
}

// Loader parses playlist export files from a manifest directory.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logging.NewComponentLogger(logger, "manifest")}
}

// LoadDir parses every *.csv under dir, sorted by filename for
// deterministic output. A missing or empty directory yields an empty
// record set; malformed rows are skipped with a warning, never fatal.
func (l *Loader) LoadDir(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Info("manifest directory not found", logging.String("path", dir))
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	var records []Record
	for _, name := range files {
		fileRecords, err := l.loadFile(filepath.Join(dir, name))
		if err != nil {
			l.logger.Warn("skipping unreadable manifest", logging.String("file", name), logging.Error(err))
			continue
		}
		records = append(records, fileRecords...)
	}

	if len(records) == 0 {
		l.logger.Info("no manifest rows loaded", logging.String("path", dir))
	}
	return records, nil
}

func (l *Loader) loadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	playlist := FriendlyName(path)
	lowered := strings.ToLower(playlist)
	liked := strings.Contains(lowered, "liked songs")
	top := strings.Contains(lowered, "top songs") || strings.Contains(lowered, "top tracks")

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := headerIndex(header)

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.Warn("skipping malformed manifest row",
				logging.String("file", filepath.Base(path)),
				logging.Int("line", line),
				logging.Error(err))
			continue
		}

		artist := PrimaryArtist(columns.value(row, colArtist))
		title := strings.TrimSpace(columns.value(row, colTitle))
		if artist == "" && title == "" {
			continue
		}

		record := Record{
			Playlist:  playlist,
			Artist:    artist,
			Title:     title,
			Album:     strings.TrimSpace(columns.value(row, colAlbum)),
			Liked:     liked,
			Top:       top,
			ArtistKey: textutil.Canonicalize(artist),
			TitleKey:  textutil.Canonicalize(title),
		}
		if raw := strings.TrimSpace(columns.value(row, colDuration)); raw != "" {
			if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms > 0 {
				record.DurationMS = ms
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// FriendlyName derives the playlist name from the manifest's logical
// name: the file stem with underscores rendered as spaces.
func FriendlyName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(strings.ReplaceAll(stem, "_", " "))
}

// PrimaryArtist resolves a semicolon-delimited artist list to its
// first entry.
func PrimaryArtist(field string) string {
	first, _, _ := strings.Cut(field, ";")
	return strings.TrimSpace(first)
}

type column int

const (
	colArtist column = iota
	colTitle
	colAlbum
	colDuration
	columnCount
)

type columnIndex [columnCount]int

// headerIndex maps known export headers to their positions. Unknown
// columns are ignored so exports with extra fields still load.
func headerIndex(header []string) columnIndex {
	var idx columnIndex
	for i := range idx {
		idx[i] = -1
	}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "artist name(s)", "artist name", "artist", "artists":
			if idx[colArtist] < 0 {
				idx[colArtist] = i
			}
		case "track name", "title":
			if idx[colTitle] < 0 {
				idx[colTitle] = i
			}
		case "album name", "album":
			if idx[colAlbum] < 0 {
				idx[colAlbum] = i
			}
		case "duration (ms)", "duration_ms", "duration":
			if idx[colDuration] < 0 {
				idx[colDuration] = i
			}
		}
	}
	return idx
}

func (c columnIndex) value(row []string, col column) string {
	i := c[col]
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
