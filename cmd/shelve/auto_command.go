package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/runlog"
	"shelve/internal/runner"
)

// newAutoCommand backs the "run on startup" surface: shell profiles and login
// items call "shelve auto", and the day gate makes repeat invocations cheap.
func newAutoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Run the daily archive pass if it has not run today",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *runlog.Store) error {
				out := cmd.OutOrStdout()
				if !cfg.Startup.AutoArchive {
					fmt.Fprintln(out, "Automatic archiving is disabled; set startup.auto_archive = true to use it")
					return nil
				}

				logger, err := newCommandLogger(cfg)
				if err != nil {
					return err
				}
				r, err := runner.New(cfg, store, logger)
				if err != nil {
					return err
				}

				run, ran, err := r.AutoArchiveIfDue(cmd.Context(), runlog.TriggerAuto)
				if err != nil {
					return err
				}
				if !ran {
					fmt.Fprintln(out, "Archive already ran today")
					return nil
				}
				printRunOutcome(out, run)
				return nil
			})
		},
	}
}
