package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crate/internal/library"
	"crate/internal/manifest"
	"crate/internal/match"
	"crate/internal/reports"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var skipReports bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match playlist snapshots against the library",
		Long: "Scan the music directory, load the playlist CSV snapshots, join the two on canonical " +
			"artist/title keys, and report per-playlist completion plus shopping-list and orphan CSVs.",
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
			if err := library.WriteIndex(cfg.Paths.IndexFile, tracks); err != nil {
				return fmt.Errorf("write index: %w", err)
			}

			records, err := manifest.NewLoader(logger).LoadDir(cfg.Paths.ManifestDir)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(out, "No playlist snapshots found in %s; nothing to reconcile\n", cfg.Paths.ManifestDir)
				return nil
			}

			rows := match.Match(records, tracks, cfg.Matching.DurationToleranceMS)
			stats := match.Stats(rows)

			headline(out, "Playlist completion")
			statRows := make([][]string, 0, len(stats))
			var totalTracks, totalMatched int
			for _, stat := range stats {
				totalTracks += stat.Total
				totalMatched += stat.Matched
				statRows = append(statRows, []string{
					stat.Playlist,
					strconv.Itoa(stat.Total),
					strconv.Itoa(stat.Matched),
					strconv.Itoa(stat.Missing),
					formatPercent(stat.PercentComplete),
					yesNo(stat.Liked),
					yesNo(stat.Top),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Playlist", "Tracks", "Matched", "Missing", "Complete", "Liked", "Top"},
				statRows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "Playlists: %d | Tracks: %d | Matched: %d | Missing: %d | Unique missing: %d\n",
				len(stats), totalTracks, totalMatched, totalTracks-totalMatched, match.MissingUnique(rows))

			if skipReports {
				return nil
			}

			writer := reports.NewWriter(cfg.Paths.ReportsDir, logger)
			shoppingPath, err := writer.WriteShoppingList(match.ShoppingList(rows))
			if err != nil {
				return err
			}
			if shoppingPath == "" {
				fmt.Fprintln(out, "All playlist tracks already exist locally; no shopping list generated")
			} else {
				fmt.Fprintf(out, "Shopping list saved to %s\n", shoppingPath)
			}

			orphanPath, err := writer.WriteOrphans(match.Orphans(rows, tracks))
			if err != nil {
				return err
			}
			if orphanPath == "" {
				fmt.Fprintln(out, "No orphaned tracks; every local track appears in a playlist snapshot")
			} else {
				fmt.Fprintf(out, "Orphaned-track report saved to %s\n", orphanPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipReports, "skip-reports", false, "Print completion stats without writing report CSVs")
	return cmd
}
