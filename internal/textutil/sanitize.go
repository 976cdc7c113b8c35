package textutil

import "strings"

// pathCharReplacer strips the characters that are illegal in file path
// components on at least one supported platform.
var pathCharReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	":", "",
	"\"", "",
	"/", "",
	"\\", "",
	"|", "",
	"?", "",
	"*", "",
)

// SafeComponent converts a display string into a filesystem-safe path
// component. Distinct reasonable inputs rarely collide, but collisions
// are tolerated; the import pipeline resolves them as duplicate titles.
// Returns fallback when the input reduces to nothing.
func SafeComponent(text, fallback string) string {
	candidate := strings.TrimSpace(text)
	if candidate == "" {
		return fallback
	}
	candidate = Transliterate(candidate)
	candidate = pathCharReplacer.Replace(candidate)
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return fallback
	}
	return candidate
}
