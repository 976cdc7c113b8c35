package config

// DefaultDurationToleranceMS bounds manifest/local duration disagreement.
const DefaultDurationToleranceMS = 3000

// Default returns the baseline configuration. Paths are relative to the
// working root until normalize expands them.
func Default() Config {
	return Config{
		Paths: Paths{
			MusicDir:    "Music",
			ManifestDir: "playlist_exports",
			StagingDir:  "Add",
			ExportDir:   "Playlists",
			ReportsDir:  "shopping_lists",
			LogDir:      "logs",
			IndexFile:   "library_index.csv",
			HistoryFile: "logs/history.db",
		},
		Matching: Matching{
			DurationToleranceMS: DefaultDurationToleranceMS,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
