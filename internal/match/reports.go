package match

import (
	"math"
	"sort"

	"crate/internal/library"
)

// ShoppingItem is one missing track aggregated across every playlist
// that wants it.
type ShoppingItem struct {
	Artist        string
	Title         string
	Album         string
	DurationMS    int64
	Playlists     []string
	PlaylistCount int
	Liked         bool
	Top           bool
}

// ShoppingList deduplicates unmatched rows by canonical key. Playlist
// names collect as a sorted set, provenance flags OR together, and the
// first row seen for a key supplies the display fields, except the
// album which takes the first non-empty value. Items sort by playlist
// count descending, then liked first, then artist and title.
func ShoppingList(rows []Row) []ShoppingItem {
	type entry struct {
		item *ShoppingItem
		seen map[string]bool
	}
	entries := make(map[trackKey]*entry)
	var keys []trackKey

	for _, row := range rows {
		if row.Matched() {
			continue
		}
		key := trackKey{row.ArtistKey, row.TitleKey}
		e, ok := entries[key]
		if !ok {
			e = &entry{
				item: &ShoppingItem{
					Artist:     row.Artist,
					Title:      row.Title,
					Album:      row.Album,
					DurationMS: row.DurationMS,
				},
				seen: make(map[string]bool),
			}
			entries[key] = e
			keys = append(keys, key)
		}
		if !e.seen[row.Playlist] {
			e.seen[row.Playlist] = true
			e.item.Playlists = append(e.item.Playlists, row.Playlist)
		}
		if e.item.Album == "" {
			e.item.Album = row.Album
		}
		e.item.Liked = e.item.Liked || row.Liked
		e.item.Top = e.item.Top || row.Top
	}

	items := make([]ShoppingItem, 0, len(keys))
	for _, key := range keys {
		item := *entries[key].item
		sort.Strings(item.Playlists)
		item.PlaylistCount = len(item.Playlists)
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.PlaylistCount != b.PlaylistCount {
			return a.PlaylistCount > b.PlaylistCount
		}
		if a.Liked != b.Liked {
			return a.Liked
		}
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		return a.Title < b.Title
	})
	return items
}

// Orphans returns the inventory tracks whose canonical key no playlist
// row references, preserving scan order. Membership is by key rather
// than matched file, so a track rejected only on duration still counts
// as wanted.
func Orphans(rows []Row, inventory []library.Track) []library.Track {
	wanted := make(map[trackKey]bool, len(rows))
	for _, row := range rows {
		wanted[trackKey{row.ArtistKey, row.TitleKey}] = true
	}
	var orphans []library.Track
	for _, track := range inventory {
		if !wanted[trackKey{track.ArtistKey, track.TitleKey}] {
			orphans = append(orphans, track)
		}
	}
	return orphans
}

// PlaylistStat summarizes one playlist's completion.
type PlaylistStat struct {
	Playlist        string
	Total           int
	Matched         int
	Missing         int
	PercentComplete float64
	Liked           bool
	Top             bool
}

// Stats computes per-playlist completion, sorted by percent complete
// descending then playlist name. Percentages round to one decimal.
func Stats(rows []Row) []PlaylistStat {
	byName := make(map[string]*PlaylistStat)
	var names []string
	for _, row := range rows {
		stat, ok := byName[row.Playlist]
		if !ok {
			stat = &PlaylistStat{Playlist: row.Playlist}
			byName[row.Playlist] = stat
			names = append(names, row.Playlist)
		}
		stat.Liked = stat.Liked || row.Liked
		stat.Top = stat.Top || row.Top
		stat.Total++
		if row.Matched() {
			stat.Matched++
		} else {
			stat.Missing++
		}
	}

	stats := make([]PlaylistStat, 0, len(names))
	for _, name := range names {
		stat := *byName[name]
		if stat.Total > 0 {
			stat.PercentComplete = math.Round(float64(stat.Matched)/float64(stat.Total)*1000) / 10
		}
		stats = append(stats, stat)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].PercentComplete != stats[j].PercentComplete {
			return stats[i].PercentComplete > stats[j].PercentComplete
		}
		return stats[i].Playlist < stats[j].Playlist
	})
	return stats
}

// MissingUnique counts distinct unmatched tracks across all playlists.
func MissingUnique(rows []Row) int {
	unique := make(map[trackKey]bool)
	for _, row := range rows {
		if !row.Matched() {
			unique[trackKey{row.ArtistKey, row.TitleKey}] = true
		}
	}
	return len(unique)
}
