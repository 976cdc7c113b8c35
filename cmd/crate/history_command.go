package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"crate/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past import runs",
		Long: "List recent import runs recorded in the history database, or show the per-file " +
			"actions of one run when a run id is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryFile)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return showRunActions(cmd, store, args[0])
			}
			return listRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of runs to list")
	return cmd
}

func listRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No import runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
			strconv.Itoa(run.Moved),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Errored),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Duration", "Moved", "Skipped", "Errors"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	return nil
}

func showRunActions(cmd *cobra.Command, store *history.Store, runID string) error {
	actions, err := store.RunActions(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(actions) == 0 {
		fmt.Fprintf(out, "No actions recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(actions))
	for _, action := range actions {
		detail := action.Destination
		if detail == "" {
			detail = action.Reason
		}
		rows = append(rows, []string{
			action.Source,
			action.Status,
			action.Playlist,
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Source", "Status", "Playlist", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
	return nil
}
