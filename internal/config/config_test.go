package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("config file should not exist")
	}
	if cfg.Matching.DurationToleranceMS != DefaultDurationToleranceMS {
		t.Errorf("tolerance = %d, want %d", cfg.Matching.DurationToleranceMS, DefaultDurationToleranceMS)
	}
	if !filepath.IsAbs(cfg.Paths.MusicDir) {
		t.Errorf("music dir not absolute: %q", cfg.Paths.MusicDir)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crate.toml")
	content := `
[paths]
music_dir = "` + filepath.Join(dir, "Tunes") + `"

[matching]
duration_tolerance_ms = 15000

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists || resolved != path {
		t.Errorf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Paths.MusicDir != filepath.Join(dir, "Tunes") {
		t.Errorf("music dir = %q", cfg.Paths.MusicDir)
	}
	if cfg.Matching.DurationToleranceMS != 15000 {
		t.Errorf("tolerance = %d", cfg.Matching.DurationToleranceMS)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crate.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Error("expected validation error for xml log format")
	}
}

func TestLoadRejectsNegativeTolerance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crate.toml")
	if err := os.WriteFile(path, []byte("[matching]\nduration_tolerance_ms = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Error("expected validation error for negative tolerance")
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.MusicDir = filepath.Join(base, "Music")
	cfg.Paths.ManifestDir = filepath.Join(base, "exports")
	cfg.Paths.StagingDir = filepath.Join(base, "Add")
	cfg.Paths.ExportDir = filepath.Join(base, "Playlists")
	cfg.Paths.ReportsDir = filepath.Join(base, "reports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	// Idempotent on a second call.
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{cfg.Paths.MusicDir, cfg.Paths.StagingDir, cfg.Paths.ReportsDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("missing directory %q: %v", dir, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "duration_tolerance_ms") {
		t.Error("sample config missing matching section")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/music")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "music") {
		t.Errorf("ExpandPath(~/music) = %q", got)
	}
}
