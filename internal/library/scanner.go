package library

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"crate/internal/logging"
	"crate/internal/tags"
	"crate/internal/textutil"
)

// audioExtensions is the supported audio set for library scanning.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".flac": {},
	".m4a":  {},
	".aac":  {},
	".ogg":  {},
	".wav":  {},
	".aiff": {},
}

// Track is one inventory record per local audio file. Records are
// immutable once built and rebuilt from scratch on every scan.
type Track struct {
	// RelativePath is slash-separated and unique within a scan.
	RelativePath string
	Artist       string
	Title        string
	Album        string
	ArtistKey    string
	TitleKey     string
	// DurationMS is 0 when the container reports no duration.
	DurationMS int64
}

// Scanner walks a music root and builds the local inventory.
type Scanner struct {
	reader tags.Reader
	logger *slog.Logger
}

// NewScanner constructs a scanner. A nil reader uses the production
// tag reader.
func NewScanner(reader tags.Reader, logger *slog.Logger) *Scanner {
	if reader == nil {
		reader = tags.NewReader()
	}
	return &Scanner{reader: reader, logger: logging.NewComponentLogger(logger, "library")}
}

// Scan visits every supported audio file under root. Tag extraction
// failures degrade to path-derived metadata (artist from the parent
// directory, title from the filename stem) rather than aborting the
// scan. Output is sorted by (artist key, title key, relative path) so
// downstream processing and diffs across runs are deterministic. A
// missing root yields an empty inventory.
func (s *Scanner) Scan(root string) ([]Track, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("music directory not found", logging.String("path", root))
			return nil, nil
		}
		return nil, fmt.Errorf("stat music root: %w", err)
	}

	var records []Track
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !SupportedAudio(path) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		records = append(records, s.buildTrack(path, filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk music root: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ArtistKey != b.ArtistKey {
			return a.ArtistKey < b.ArtistKey
		}
		if a.TitleKey != b.TitleKey {
			return a.TitleKey < b.TitleKey
		}
		return a.RelativePath < b.RelativePath
	})

	s.logger.Info("library scan completed", logging.Int("tracks", len(records)))
	return records, nil
}

func (s *Scanner) buildTrack(path, rel string) Track {
	meta, err := s.reader.ReadTags(path)
	if err != nil {
		s.logger.Warn("tag extraction failed", logging.String("file", rel), logging.Error(err))
		meta = tags.Tags{}
	}

	artist := meta.Artist
	if artist == "" {
		artist = filepath.Base(filepath.Dir(path))
	}
	title := meta.Title
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return Track{
		RelativePath: rel,
		Artist:       artist,
		Title:        title,
		Album:        meta.Album,
		ArtistKey:    textutil.Canonicalize(artist),
		TitleKey:     textutil.Canonicalize(title),
		DurationMS:   meta.DurationMS,
	}
}

// SupportedAudio reports whether path carries a supported audio
// extension (case-insensitive).
func SupportedAudio(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
