package match

import (
	"crate/internal/library"
	"crate/internal/manifest"
)

// Row is a manifest record augmented with its resolved local file.
// FilePath is empty when the row is unmatched.
type Row struct {
	manifest.Record
	FilePath        string
	LocalDurationMS int64
}

// Matched reports whether the row resolved to a local file.
func (r Row) Matched() bool {
	return r.FilePath != ""
}

type trackKey struct {
	artist string
	title  string
}

// Match left-joins manifest records onto the inventory by
// (artist key, title key). When both a manifest duration and a local
// duration are known and their difference exceeds toleranceMS, the row
// reverts to unmatched rather than being dropped: absent durations
// never disqualify a match, only present-and-divergent ones do. An
// empty inventory leaves every row unmatched without joining.
//
// When several local files share one key, the lexicographically first
// relative path wins. The scanner's sort order makes this equivalent
// to first-match-wins by scan order.
func Match(records []manifest.Record, inventory []library.Track, toleranceMS int64) []Row {
	rows := make([]Row, 0, len(records))
	if len(inventory) == 0 {
		for _, record := range records {
			rows = append(rows, Row{Record: record})
		}
		return rows
	}

	byKey := make(map[trackKey]library.Track, len(inventory))
	for _, track := range inventory {
		key := trackKey{track.ArtistKey, track.TitleKey}
		if existing, ok := byKey[key]; !ok || track.RelativePath < existing.RelativePath {
			byKey[key] = track
		}
	}

	for _, record := range records {
		row := Row{Record: record}
		if track, ok := byKey[trackKey{record.ArtistKey, record.TitleKey}]; ok {
			row.FilePath = track.RelativePath
			row.LocalDurationMS = track.DurationMS
			if record.DurationMS > 0 && track.DurationMS > 0 {
				diff := record.DurationMS - track.DurationMS
				if diff < 0 {
					diff = -diff
				}
				if diff > toleranceMS {
					row.FilePath = ""
					row.LocalDurationMS = 0
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}
