package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"shelve/internal/config"
	"shelve/internal/logging"
	"shelve/internal/runlog"
)

// newCommandLogger builds a stdout logger for one-shot commands. Level and
// format come from config so an operator can quiet or JSON-ify the run logs
// without touching flags.
func newCommandLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, nil
}

func printRunOutcome(out io.Writer, run *runlog.Run) {
	if run == nil {
		return
	}
	switch run.Status {
	case runlog.StatusCompleted:
		if run.MovedCount == 0 && run.SkippedCount == 0 {
			fmt.Fprintln(out, "Nothing to archive")
			return
		}
		fmt.Fprintf(out, "Archived %d %s\n", run.MovedCount, noteNoun(run.MovedCount))
		if run.SkippedCount > 0 {
			fmt.Fprintf(out, "%d %s left in place (destination already has a copy)\n", run.SkippedCount, noteNoun(run.SkippedCount))
		}
	case runlog.StatusSkipped:
		fmt.Fprintf(out, "Archive folder not found: %s\n", run.FolderPath)
	default:
		fmt.Fprintf(out, "Archive run %s: %s\n", run.Status, run.ErrorMessage)
	}
}

func noteNoun(count int) string {
	if count == 1 {
		return "note"
	}
	return "notes"
}

func dayNoun(count int) string {
	if count == 1 {
		return "day"
	}
	return "days"
}

func shortRunID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncateText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 3 || len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
