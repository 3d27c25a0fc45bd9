package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/runlog"
	"shelve/internal/runner"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive qualifying notes into monthly folders now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *runlog.Store) error {
				logger, err := newCommandLogger(cfg)
				if err != nil {
					return err
				}
				r, err := runner.New(cfg, store, logger)
				if err != nil {
					return err
				}

				if dryRun {
					return printPreview(cmd, r)
				}

				run, err := r.RunArchive(cmd.Context(), runlog.TriggerManual)
				if err != nil {
					return err
				}
				printRunOutcome(cmd.OutOrStdout(), run)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the notes a run would move without touching any files")
	return cmd
}

func printPreview(cmd *cobra.Command, r *runner.Runner) error {
	moves, err := r.Preview(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(moves) == 0 {
		fmt.Fprintln(out, "Nothing to archive")
		return nil
	}

	rows := make([][]string, 0, len(moves))
	buckets := make(map[string]struct{})
	for _, move := range moves {
		rows = append(rows, []string{move.Name, move.Bucket})
		buckets[move.Bucket] = struct{}{}
	}
	fmt.Fprintln(out, renderTable([]string{"Note", "Folder"}, rows, []columnAlignment{alignLeft, alignLeft}))
	fmt.Fprintf(out, "Would archive %s %s into %d monthly %s\n",
		strconv.Itoa(len(moves)), noteNoun(len(moves)), len(buckets), folderNoun(len(buckets)))
	return nil
}

func folderNoun(count int) string {
	if count == 1 {
		return "folder"
	}
	return "folders"
}
