package config

import "fmt"

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	required := map[string]string{
		"music_dir":    c.Paths.MusicDir,
		"manifest_dir": c.Paths.ManifestDir,
		"staging_dir":  c.Paths.StagingDir,
		"export_dir":   c.Paths.ExportDir,
		"reports_dir":  c.Paths.ReportsDir,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("config: %s must not be empty", key)
		}
	}

	if c.Matching.DurationToleranceMS < 0 {
		return fmt.Errorf("config: duration_tolerance_ms must not be negative, got %d", c.Matching.DurationToleranceMS)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: logging format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
