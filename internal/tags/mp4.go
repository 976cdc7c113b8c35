package tags

import (
	"fmt"
	"strings"

	mp4tag "github.com/Sorrow446/go-mp4tag"
)

func readMP4(path string) (Tags, error) {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return Tags{}, fmt.Errorf("open mp4 tags: %w", err)
	}
	defer mp4.Close()

	parsed, err := mp4.Read()
	if err != nil {
		return Tags{}, fmt.Errorf("read mp4 tags: %w", err)
	}
	return Tags{
		Artist: strings.TrimSpace(parsed.Artist),
		Title:  strings.TrimSpace(parsed.Title),
		Album:  strings.TrimSpace(parsed.Album),
	}, nil
}
