package tags

import (
	"path/filepath"
	"strings"
)

// Tags holds the metadata extracted from one audio container. Fields
// are already decoded to plain strings: multi-valued frames resolve to
// their first entry at this boundary.
type Tags struct {
	Artist string
	Title  string
	Album  string
	// DurationMS is the container-reported duration in milliseconds,
	// 0 when the container carries none.
	DurationMS int64
}

// Empty reports whether no metadata was extracted at all.
func (t Tags) Empty() bool {
	return t.Artist == "" && t.Title == "" && t.Album == "" && t.DurationMS == 0
}

// Reader extracts tags from a single audio file. Implementations
// return an error for unreadable or corrupt containers instead of
// panicking; callers treat extraction failure as a per-file condition.
type Reader interface {
	ReadTags(path string) (Tags, error)
}

// FormatReader dispatches to a per-container decoder by file extension.
// Containers without a supported tag format yield empty Tags so callers
// can fall back to path-derived metadata.
type FormatReader struct{}

// NewReader returns the production tag reader.
func NewReader() *FormatReader {
	return &FormatReader{}
}

func (FormatReader) ReadTags(path string) (Tags, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return readID3(path)
	case ".flac":
		return readFLAC(path)
	case ".m4a", ".mp4":
		return readMP4(path)
	default:
		// ogg/wav/aiff/aac carry no supported tag container.
		return Tags{}, nil
	}
}
