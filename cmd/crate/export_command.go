package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"crate/internal/export"
	"crate/internal/library"
	"crate/internal/manifest"
	"crate/internal/match"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write device playlists",
		Long: "Match playlist snapshots against the library and write one .m3u8 file per playlist " +
			"with ../Music/ relative paths, ready to copy next to the music folder on a device.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			tracks, err := library.NewScanner(nil, logger).Scan(cfg.Paths.MusicDir)
			if err != nil {
				return fmt.Errorf("scan library: %w", err)
			}
			records, err := manifest.NewLoader(logger).LoadDir(cfg.Paths.ManifestDir)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(out, "No playlist snapshots found in %s; nothing to export\n", cfg.Paths.ManifestDir)
				return nil
			}

			rows := match.Match(records, tracks, cfg.Matching.DurationToleranceMS)
			musicRootName := filepath.Base(cfg.Paths.MusicDir)
			results, err := export.NewExporter(logger).WritePlaylists(rows, cfg.Paths.ExportDir, musicRootName)
			if err != nil {
				return err
			}

			headline(out, fmt.Sprintf("Exported %d playlists to %s", len(results), cfg.Paths.ExportDir))
			tableRows := make([][]string, 0, len(results))
			var skippedTotal int
			for _, result := range results {
				skippedTotal += result.Skipped
				tableRows = append(tableRows, []string{
					result.Playlist,
					result.File,
					strconv.Itoa(result.Written),
					strconv.Itoa(result.Skipped),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Playlist", "File", "Written", "Skipped"},
				tableRows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			if skippedTotal > 0 {
				fmt.Fprintf(out, "Skipped %d tracks because the audio files are still missing\n", skippedTotal)
			}
			return nil
		},
	}
}
