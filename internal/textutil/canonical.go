package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	featPattern     = regexp.MustCompile(`(?i)\(feat\..*?\)`)
	remixPattern    = regexp.MustCompile(`(?i)-\s*(remaster(ed)?|remix|edit|mix).*`)
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// markStripper decomposes to NFD and removes combining marks so accented
// characters fold to their base letters.
var markStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// specialFold covers characters that do not decompose to a base letter
// plus the common typographic punctuation variants.
var specialFold = strings.NewReplacer(
	"ø", "o", "Ø", "O",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ß", "ss",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "Th",
	"‘", "'", "’", "'",
	"“", "\"", "”", "\"",
	"–", "-", "—", "-",
	"…", "...",
)

// Transliterate reduces text to an ASCII-range approximation. Accents
// fold to base letters, known special characters map to plain-letter
// equivalents, and anything still outside ASCII is dropped.
func Transliterate(text string) string {
	folded, _, err := transform.String(markStripper, text)
	if err != nil {
		folded = text
	}
	folded = specialFold.Replace(folded)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Canonicalize maps a noisy display string to the stable key used for
// matching manifest rows against the local inventory. Inputs differing
// only in case, accents, punctuation, or a feat./remix annotation yield
// the same key. Empty input yields an empty key.
func Canonicalize(text string) string {
	if text == "" {
		return ""
	}
	key := Transliterate(text)
	key = featPattern.ReplaceAllString(key, "")
	key = remixPattern.ReplaceAllString(key, "")
	key = strings.ToLower(key)
	key = nonAlnumPattern.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}
