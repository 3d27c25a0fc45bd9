package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/runlog"
)

type runView struct {
	ID         string     `json:"id"`
	Trigger    string     `json:"trigger"`
	Status     string     `json:"status"`
	Folder     string     `json:"folder"`
	Moved      int        `json:"moved"`
	Skipped    int        `json:"skipped"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent archive runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *runlog.Store) error {
				runs, err := store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, buildRunViews(runs))
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No archive runs recorded")
					return nil
				}
				table := renderTable(
					[]string{"Run", "Started", "Trigger", "Status", "Moved", "Skipped", "Error"},
					buildHistoryRows(runs),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")

	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded archive runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *runlog.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s from history\n", removed, runNoun(removed))
				return nil
			})
		},
	}
}

func buildHistoryRows(runs []*runlog.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(run.Trigger),
			string(run.Status),
			strconv.Itoa(run.MovedCount),
			strconv.Itoa(run.SkippedCount),
			truncateText(run.ErrorMessage, 48),
		})
	}
	return rows
}

func buildRunViews(runs []*runlog.Run) []runView {
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, runView{
			ID:         run.ID,
			Trigger:    string(run.Trigger),
			Status:     string(run.Status),
			Folder:     run.FolderPath,
			Moved:      run.MovedCount,
			Skipped:    run.SkippedCount,
			Error:      run.ErrorMessage,
			StartedAt:  run.StartedAt,
			FinishedAt: run.FinishedAt,
		})
	}
	return views
}

func runNoun(count int64) string {
	if count == 1 {
		return "run"
	}
	return "runs"
}
