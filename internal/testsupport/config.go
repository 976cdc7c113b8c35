// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"crate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MusicDir = filepath.Join(base, "Music")
	cfg.Paths.ManifestDir = filepath.Join(base, "playlist_exports")
	cfg.Paths.StagingDir = filepath.Join(base, "Add")
	cfg.Paths.ExportDir = filepath.Join(base, "Playlists")
	cfg.Paths.ReportsDir = filepath.Join(base, "shopping_lists")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.IndexFile = filepath.Join(base, "library_index.csv")
	cfg.Paths.HistoryFile = filepath.Join(base, "logs", "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithTolerance overrides the duration tolerance on the test config.
func WithTolerance(ms int64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.DurationToleranceMS = ms
	}
}
