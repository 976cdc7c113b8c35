// Package tags is the tag-extraction boundary. It decodes artist,
// title, album, and duration from audio containers behind a small
// Reader interface so scanning and importing stay testable without
// real audio fixtures.
package tags
