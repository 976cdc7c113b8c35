package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crate/internal/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Index the music library",
		Long:  "Walk the music directory, extract tags from every audio file, and persist the library index CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			tracks, err := library.NewScanner(nil, logger).Scan(cfg.Paths.MusicDir)
			if err != nil {
				return fmt.Errorf("scan library: %w", err)
			}
			if err := library.WriteIndex(cfg.Paths.IndexFile, tracks); err != nil {
				return fmt.Errorf("write index: %w", err)
			}

			out := cmd.OutOrStdout()
			headline(out, fmt.Sprintf("Indexed %d tracks from %s", len(tracks), cfg.Paths.MusicDir))
			fmt.Fprintf(out, "Library index saved to %s\n", cfg.Paths.IndexFile)
			return nil
		},
	}
}
