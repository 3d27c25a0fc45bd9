package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/preflight"
	"shelve/internal/runlog"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, folder health, and the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *runlog.Store) error {
				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)

				for _, line := range renderSectionHeader("Archive Setup", colorize) {
					fmt.Fprintln(stdout, line)
				}
				configDetail := ctx.configPath
				if !ctx.configExists {
					configDetail += " (defaults, file not found)"
				}
				fmt.Fprintln(stdout, renderStatusLine("Config", statusInfo, configDetail, colorize))
				fmt.Fprintln(stdout, directoryStatusLine("Archive folder", cfg.Archive.Folder, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Date format", statusInfo,
					fmt.Sprintf("notes %s, buckets %s", cfg.Archive.DateFormat, cfg.Archive.BucketFormat), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Minimum age", statusInfo,
					fmt.Sprintf("%d %s", cfg.Archive.MinAgeDays, dayNoun(cfg.Archive.MinAgeDays)), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Overwrite existing", statusInfo, yesNo(cfg.Archive.OverwriteExisting), colorize))
				fmt.Fprintln(stdout)

				for _, line := range renderSectionHeader("Paths", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, directoryStatusLine("State directory", cfg.Paths.StateDir, colorize))
				fmt.Fprintln(stdout, directoryStatusLine("Log directory", cfg.Paths.LogDir, colorize))
				fmt.Fprintln(stdout)

				for _, line := range renderSectionHeader("Automation", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, autoArchiveStatusLine(cfg, colorize))
				fmt.Fprintln(stdout, lastAutoDayLine(cmd, store, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Watch interval", statusInfo, cfg.WatchInterval().String(), colorize))
				fmt.Fprintln(stdout, ntfyStatusLine(cfg, colorize))
				fmt.Fprintln(stdout)

				for _, line := range renderSectionHeader("Last Run", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, lastRunLine(cmd, store, colorize))
				return nil
			})
		},
	}
}

func autoArchiveStatusLine(cfg *config.Config, colorize bool) string {
	if cfg.Startup.AutoArchive {
		return renderStatusLine("Auto archive", statusOK, "Enabled", colorize)
	}
	return renderStatusLine("Auto archive", statusInfo, "Disabled", colorize)
}

func lastAutoDayLine(cmd *cobra.Command, store *runlog.Store, colorize bool) string {
	day, recorded, err := store.AutoRunDay(cmd.Context())
	if err != nil {
		return renderStatusLine("Last automatic day", statusWarn, err.Error(), colorize)
	}
	if !recorded {
		return renderStatusLine("Last automatic day", statusInfo, "never", colorize)
	}
	return renderStatusLine("Last automatic day", statusInfo, day, colorize)
}

func ntfyStatusLine(cfg *config.Config, colorize bool) string {
	result := preflight.CheckNtfyFromConfig(cfg)
	switch {
	case result.Detail == "Disabled":
		return renderStatusLine("ntfy", statusInfo, result.Detail, colorize)
	case result.Passed:
		return renderStatusLine("ntfy", statusOK, result.Detail, colorize)
	default:
		return renderStatusLine("ntfy", statusWarn, result.Detail, colorize)
	}
}

func lastRunLine(cmd *cobra.Command, store *runlog.Store, colorize bool) string {
	last, err := store.LastRun(cmd.Context())
	if err != nil {
		return renderStatusLine("Last run", statusWarn, err.Error(), colorize)
	}
	if last == nil {
		return renderStatusLine("Last run", statusInfo, "none recorded", colorize)
	}

	kind := statusInfo
	switch last.Status {
	case runlog.StatusCompleted:
		kind = statusOK
	case runlog.StatusSkipped:
		kind = statusWarn
	case runlog.StatusFailed:
		kind = statusError
	}

	detail := fmt.Sprintf("%s %s at %s, moved %d",
		last.Status, last.Trigger, last.StartedAt.Local().Format("2006-01-02 15:04"), last.MovedCount)
	if last.ErrorMessage != "" {
		detail = fmt.Sprintf("%s (%s)", detail, truncateText(last.ErrorMessage, 60))
	}
	return renderStatusLine("Last run", kind, detail, colorize)
}

func directoryStatusLine(label, path string, colorize bool) string {
	result := preflight.CheckDirectoryAccess(label, path)
	if result.Passed {
		return renderStatusLine(label, statusOK, result.Detail, colorize)
	}
	return renderStatusLine(label, statusError, result.Detail, colorize)
}
