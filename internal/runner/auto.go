package runner

import (
	"context"
	"fmt"
	"time"

	"shelve/internal/logging"
	"shelve/internal/runlog"
)

// AutoArchiveIfDue runs one archive pass when none has succeeded on the
// current calendar day. The day marker only advances after a completed run, so
// skipped and failed passes leave the gate open for a later retry. The second
// return value reports whether a pass was attempted at all.
func (r *Runner) AutoArchiveIfDue(ctx context.Context, trigger runlog.Trigger) (*runlog.Run, bool, error) {
	today := time.Now().Format(runlog.DayLayout)
	lastDay, recorded, err := r.store.AutoRunDay(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("read auto-run gate: %w", err)
	}
	if recorded && lastDay == today {
		r.logger.Debug("automatic archive already ran today", logging.String("day", today))
		return nil, false, nil
	}

	run, err := r.RunArchive(ctx, trigger)
	if err != nil {
		return run, true, err
	}
	if run.Status == runlog.StatusCompleted {
		if err := r.store.MarkAutoRunDay(ctx, today); err != nil {
			return run, true, fmt.Errorf("advance auto-run gate: %w", err)
		}
	}
	return run, true, nil
}
