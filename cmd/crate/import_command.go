package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"crate/internal/history"
	"crate/internal/importer"
	"crate/internal/logging"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Move staged downloads into the library",
		Long: "Process every supported audio file under the staging directory, resolve its tags with " +
			"path fallbacks, and move it into the Artist/Album library layout. Each run is recorded " +
			"in the import history database.",
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

			imp := importer.New(cfg.Paths.MusicDir, cfg.Paths.StagingDir, cfg.Paths.ManifestDir, nil, logger)
			started := time.Now()
			result, err := imp.Run(cmd.Context())
			if err != nil {
				if errors.Is(err, importer.ErrImportLocked) {
					return fmt.Errorf("another import is already running against %s", cfg.Paths.StagingDir)
				}
				return err
			}
			finished := time.Now()

			runID, err := recordImportRun(cmd, cfg.Paths.HistoryFile, started, finished, result)
			if err != nil {
				// History is an audit trail; a recording failure must not
				// mask a completed import.
				fmt.Fprintf(out, "Warning: import completed but history was not recorded: %v\n", err)
			} else {
				logger.Info("import history recorded", logging.String(logging.FieldRunID, runID))
			}

			if len(result.Actions) == 0 {
				fmt.Fprintf(out, "No staged audio files found in %s\n", cfg.Paths.StagingDir)
				return nil
			}

			headline(out, fmt.Sprintf("Imported %d tracks (%d skipped, %d errors)",
				result.Moved, result.Skipped, result.Errored))
			actionRows := make([][]string, 0, len(result.Actions))
			for _, action := range result.Actions {
				detail := action.Destination
				if detail == "" {
					detail = action.Reason
				}
				actionRows = append(actionRows, []string{
					action.Source,
					string(action.Status),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Status", "Detail"},
				actionRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if len(result.Updates) > 0 {
				headline(out, "Playlists with new tracks")
				updateRows := make([][]string, 0, len(result.Updates))
				for _, update := range result.Updates {
					updateRows = append(updateRows, []string{update.Playlist, strconv.Itoa(update.TracksAdded)})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Playlist", "Tracks added"},
					updateRows,
					[]columnAlignment{alignLeft, alignRight},
				))
			}
			if runID != "" {
				fmt.Fprintf(out, "Run recorded as %s\n", runID)
			}
			return nil
		},
	}
}

func recordImportRun(cmd *cobra.Command, historyPath string, started, finished time.Time, result *importer.Result) (string, error) {
	store, err := history.Open(historyPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	actions := make([]history.ActionRecord, 0, len(result.Actions))
	for _, action := range result.Actions {
		actions = append(actions, history.ActionRecord{
			Source:      action.Source,
			Destination: action.Destination,
			Playlist:    action.Playlist,
			Status:      string(action.Status),
			Reason:      action.Reason,
			Artist:      action.Artist,
			Album:       action.Album,
			Title:       action.Title,
		})
	}

	run := history.Run{
		StartedAt:  started,
		FinishedAt: finished,
		Moved:      result.Moved,
		Skipped:    result.Skipped,
		Errored:    result.Errored,
	}
	return store.RecordRun(cmd.Context(), run, actions)
}
