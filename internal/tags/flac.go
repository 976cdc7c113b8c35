package tags

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

func readFLAC(path string) (Tags, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return Tags{}, fmt.Errorf("parse flac: %w", err)
	}

	var out Tags
	if info, err := f.GetStreamInfo(); err == nil && info.SampleRate > 0 {
		seconds := float64(info.SampleCount) / float64(info.SampleRate)
		out.DurationMS = int64(math.Round(seconds * 1000))
	}

	for _, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		out.Artist = firstComment(cmts, flacvorbis.FIELD_ARTIST)
		out.Title = firstComment(cmts, flacvorbis.FIELD_TITLE)
		out.Album = firstComment(cmts, flacvorbis.FIELD_ALBUM)
		break
	}
	return out, nil
}

// firstComment resolves vorbis fields that may carry multiple values;
// the first entry wins.
func firstComment(cmts *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmts.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
