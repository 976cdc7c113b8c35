package tags

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2"
)

func readID3(path string) (Tags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tags{}, fmt.Errorf("open id3 tag: %w", err)
	}
	defer tag.Close()

	// ID3 frames carry no reliable duration; it stays absent for mp3.
	return Tags{
		Artist: strings.TrimSpace(tag.Artist()),
		Title:  strings.TrimSpace(tag.Title()),
		Album:  strings.TrimSpace(tag.Album()),
	}, nil
}
