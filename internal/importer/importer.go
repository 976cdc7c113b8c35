package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"crate/internal/fileutil"
	"crate/internal/logging"
	"crate/internal/tags"
	"crate/internal/textutil"
)

// ErrImportLocked indicates another import run holds the staging lock.
var ErrImportLocked = errors.New("import already running")

const lockFileName = ".crate-import.lock"

// Status classifies the outcome of one staged file.
type Status string

const (
	StatusMoved                Status = "moved"
	StatusErrorRead            Status = "error_read"
	StatusErrorMove            Status = "error_move"
	StatusSkippedExists        Status = "skipped_exists"
	StatusSkippedDuplicate     Status = "skipped_duplicate_title"
	StatusSkippedNoArtist      Status = "skipped_unknown_artist"
	StatusSkippedNoAlbum       Status = "skipped_unknown_album"
	StatusSkippedMissingTags   Status = "skipped_missing_tags"
	StatusSkippedMissingSource Status = "skipped_missing_source"
)

// Errored reports whether the status is a hard failure rather than a
// skip.
func (s Status) Errored() bool {
	return s == StatusErrorRead || s == StatusErrorMove
}

// Action records the decision made for one staged file. Source and
// Destination are relative to the staging root and music root
// respectively; the resolved tag fields are set only on moves.
type Action struct {
	Source      string
	Destination string
	Playlist    string
	Status      Status
	Reason      string
	Artist      string
	Album       string
	Title       string
}

// PlaylistUpdate counts tracks moved toward one playlist's staging
// folder during a run.
type PlaylistUpdate struct {
	Playlist    string
	TracksAdded int
}

// Result is the full outcome of one import run.
type Result struct {
	Actions []Action
	Updates []PlaylistUpdate
	Moved   int
	Skipped int
	Errored int
}

// importExtensions lists the formats the importer relocates. The
// scanner accepts a wider set; staged files in other formats stay put.
var importExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".wav":  true,
}

// Importer moves staged downloads into the Artist/Album library layout.
type Importer struct {
	musicDir    string
	stagingDir  string
	manifestDir string
	reader      tags.Reader
	logger      *slog.Logger
}

func New(musicDir, stagingDir, manifestDir string, reader tags.Reader, logger *slog.Logger) *Importer {
	if reader == nil {
		reader = tags.NewReader()
	}
	return &Importer{
		musicDir:    musicDir,
		stagingDir:  stagingDir,
		manifestDir: manifestDir,
		reader:      reader,
		logger:      logging.NewComponentLogger(logger, "importer"),
	}
}

// Run processes every supported file under the staging directory in
// sorted path order. The whole run holds an exclusive file lock in the
// staging root; a second concurrent run fails fast with
// ErrImportLocked. Per-file failures never abort the run.
func (i *Importer) Run(ctx context.Context) (*Result, error) {
	if err := os.MkdirAll(i.stagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	lock := flock.New(filepath.Join(i.stagingDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return nil, ErrImportLocked
	}
	defer lock.Unlock()

	lookup, err := BuildStagingLookup(i.stagingDir, i.manifestDir)
	if err != nil {
		return nil, err
	}

	files, err := i.collectStaged()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, relPath := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		action := i.processFile(relPath, lookup)
		result.Actions = append(result.Actions, action)
		switch {
		case action.Status == StatusMoved:
			result.Moved++
		case action.Status.Errored():
			result.Errored++
		default:
			result.Skipped++
		}
	}

	result.Updates = summarizeUpdates(result.Actions)
	i.logger.Info("import run complete",
		logging.Int("moved", result.Moved),
		logging.Int("skipped", result.Skipped),
		logging.Int("errored", result.Errored))
	return result, nil
}

// collectStaged walks the staging tree and returns supported audio
// files as sorted staging-relative paths.
func (i *Importer) collectStaged() ([]string, error) {
	var files []string
	err := filepath.WalkDir(i.stagingDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !importExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(i.stagingDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk staging directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func (i *Importer) processFile(relPath string, lookup StagingLookup) Action {
	action := Action{
		Source:   relPath,
		Playlist: lookup.PlaylistFor(relPath),
	}
	absPath := filepath.Join(i.stagingDir, filepath.FromSlash(relPath))

	if _, err := os.Stat(absPath); err != nil {
		action.Status = StatusSkippedMissingSource
		action.Reason = "file disappeared before processing"
		return action
	}

	read, err := i.reader.ReadTags(absPath)
	if err != nil {
		action.Status = StatusErrorRead
		action.Reason = err.Error()
		i.logger.Warn("tag read failed", logging.String("file", relPath), logging.Error(err))
		return action
	}

	artist, album, title := i.applyFallbacks(read, relPath)
	if artist == "" {
		action.Status = StatusSkippedNoArtist
		action.Reason = "missing artist tag after fallbacks"
		return action
	}
	if album == "" {
		action.Status = StatusSkippedNoAlbum
		action.Reason = "missing album tag after fallbacks"
		return action
	}
	if title == "" {
		action.Status = StatusSkippedMissingTags
		action.Reason = "unable to infer track title"
		return action
	}

	stem := fileStem(relPath)
	artistComponent := textutil.SafeComponent(artist, "Unknown Artist")
	albumComponent := textutil.SafeComponent(album, "Unknown Album")
	titleComponent := textutil.SafeComponent(title, stem)
	destDir := filepath.Join(i.musicDir, artistComponent, albumComponent)
	destName := titleComponent + strings.ToLower(filepath.Ext(relPath))
	destPath := filepath.Join(destDir, destName)

	duplicate := findDuplicateTitle(destDir, title)

	if _, err := os.Stat(destPath); err == nil {
		action.Status = StatusSkippedExists
		action.Reason = fmt.Sprintf("destination already exists: %s", destPath)
		return action
	}
	if duplicate != "" {
		action.Status = StatusSkippedDuplicate
		action.Reason = fmt.Sprintf("similar track already present: %s", duplicate)
		return action
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		action.Status = StatusErrorMove
		action.Reason = err.Error()
		return action
	}
	if err := fileutil.MoveFile(absPath, destPath); err != nil {
		action.Status = StatusErrorMove
		action.Reason = err.Error()
		i.logger.Warn("move failed", logging.String("file", relPath), logging.Error(err))
		return action
	}

	action.Status = StatusMoved
	action.Destination = filepath.ToSlash(filepath.Join(artistComponent, albumComponent, destName))
	action.Artist = artist
	action.Album = album
	action.Title = title
	i.logger.Info("track imported",
		logging.String("source", relPath),
		logging.String("destination", action.Destination))
	return action
}

// applyFallbacks fills missing tag fields from the staging-relative
// path. The segment list keeps the filename, so a file one level deep
// can resolve its album to its own name; the title always falls back to
// the file stem.
func (i *Importer) applyFallbacks(read tags.Tags, relPath string) (artist, album, title string) {
	artist = strings.TrimSpace(read.Artist)
	album = strings.TrimSpace(read.Album)
	title = strings.TrimSpace(read.Title)

	parts := strings.Split(relPath, "/")
	if len(parts) > 0 && parts[0] == StageFolderName {
		parts = parts[1:]
	}
	if artist == "" && len(parts) > 0 {
		artist = parts[0]
	}
	if album == "" && len(parts) > 1 {
		album = parts[1]
	}
	if title == "" {
		title = fileStem(relPath)
	}
	return artist, album, title
}

// findDuplicateTitle scans the destination directory for a file whose
// canonical stem equals the canonical title. Returns the matching file
// name, or empty when the directory is absent or clean.
func findDuplicateTitle(destDir, title string) string {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return ""
	}
	canonical := textutil.Canonicalize(title)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if textutil.Canonicalize(fileStem(entry.Name())) == canonical {
			return entry.Name()
		}
	}
	return ""
}

func summarizeUpdates(actions []Action) []PlaylistUpdate {
	counts := make(map[string]int)
	for _, action := range actions {
		if action.Status == StatusMoved && action.Playlist != "" {
			counts[action.Playlist]++
		}
	}
	updates := make([]PlaylistUpdate, 0, len(counts))
	for playlist, count := range counts {
		updates = append(updates, PlaylistUpdate{Playlist: playlist, TracksAdded: count})
	}
	sort.Slice(updates, func(a, b int) bool {
		if updates[a].TracksAdded != updates[b].TracksAdded {
			return updates[a].TracksAdded > updates[b].TracksAdded
		}
		return updates[a].Playlist < updates[b].Playlist
	})
	return updates
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
