package config

import "strings"

// normalize expands every path field to an absolute path and fills
// zero-valued settings with their defaults.
func (c *Config) normalize() error {
	fields := []*string{
		&c.Paths.MusicDir,
		&c.Paths.ManifestDir,
		&c.Paths.StagingDir,
		&c.Paths.ExportDir,
		&c.Paths.ReportsDir,
		&c.Paths.LogDir,
		&c.Paths.IndexFile,
		&c.Paths.HistoryFile,
	}
	for _, field := range fields {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if c.Matching.DurationToleranceMS == 0 {
		c.Matching.DurationToleranceMS = DefaultDurationToleranceMS
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}
