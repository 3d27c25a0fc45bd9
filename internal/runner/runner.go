package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"shelve/internal/archive"
	"shelve/internal/config"
	"shelve/internal/logging"
	"shelve/internal/notifications"
	"shelve/internal/runlog"
	"shelve/internal/services"
)

// ErrRunInProgress reports that another archive pass holds the run lock.
var ErrRunInProgress = errors.New("another archive run is already in progress")

// Runner executes archive passes and records each one in the run journal.
type Runner struct {
	cfg      *config.Config
	store    *runlog.Store
	logger   *slog.Logger
	notifier notifications.Service
	archiver *archive.Archiver
	lock     *flock.Flock

	inFlight atomic.Bool
}

// New constructs a runner with the default notification service.
func New(cfg *config.Config, store *runlog.Store, logger *slog.Logger) (*Runner, error) {
	return NewWithNotifier(cfg, store, logger, notifications.NewService(cfg))
}

// NewWithNotifier constructs a runner with a custom notifier (used in tests).
func NewWithNotifier(cfg *config.Config, store *runlog.Store, logger *slog.Logger, notifier notifications.Service) (*Runner, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("runner requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	archiver, err := archive.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:      cfg,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "runner"),
		notifier: notifier,
		archiver: archiver,
		lock:     flock.New(cfg.LockPath()),
	}, nil
}

// RunArchive performs one archive pass and persists the outcome. The returned
// run carries the final status: completed, skipped when the archive folder is
// unavailable, or failed with partial counts when a move aborted the pass.
// A skipped run returns a nil error; the condition lives on the run record.
func (r *Runner) RunArchive(ctx context.Context, trigger runlog.Trigger) (*runlog.Run, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.inFlight.Store(false)

	locked, err := r.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrRunInProgress
	}
	defer func() {
		if unlockErr := r.lock.Unlock(); unlockErr != nil {
			r.logger.Warn("failed to release run lock", logging.Error(unlockErr))
		}
	}()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithTrigger(ctx, string(trigger))
	logger := logging.WithContext(ctx, r.logger)

	run, err := r.store.NewRun(ctx, runID, trigger, r.cfg.Archive.Folder)
	if err != nil {
		return nil, fmt.Errorf("record run start: %w", err)
	}
	logger.Info("archive run started", logging.String("folder", r.cfg.Archive.Folder))

	result, runErr := r.archiver.Run(ctx, time.Now())
	if runErr != nil {
		return r.finishFailed(ctx, logger, run, result, runErr)
	}

	run.MarkCompleted(result.Moved, result.Skipped)
	if err := r.store.Update(ctx, run); err != nil {
		return run, fmt.Errorf("record run outcome: %w", err)
	}
	logger.Info("archive run completed",
		logging.Int("moved", result.Moved),
		logging.Int("skipped", result.Skipped),
		logging.Duration("run_duration", time.Since(run.StartedAt)),
	)
	if result.Moved > 0 || result.Skipped > 0 {
		r.publish(ctx, logger, notifications.EventArchiveCompleted, notifications.Payload{
			"moved":   strconv.Itoa(result.Moved),
			"skipped": strconv.Itoa(result.Skipped),
			"folder":  r.cfg.Archive.Folder,
		})
	}
	return run, nil
}

// Preview returns the moves a pass would perform right now without moving
// files or recording a run.
func (r *Runner) Preview(ctx context.Context) ([]archive.Move, error) {
	threshold := archive.Threshold(time.Now(), r.cfg.Archive.MinAgeDays)
	return r.archiver.Plan(ctx, threshold)
}

func (r *Runner) finishFailed(ctx context.Context, logger *slog.Logger, run *runlog.Run, result archive.Result, runErr error) (*runlog.Run, error) {
	if services.FailureStatus(runErr) == runlog.StatusSkipped {
		run.MarkSkipped(runErr.Error())
		if err := r.store.Update(ctx, run); err != nil {
			return run, fmt.Errorf("record skipped run: %w", err)
		}
		logging.WarnWithContext(logger, "archive folder unavailable, nothing archived", "run_skipped",
			logging.String("folder", r.cfg.Archive.Folder),
			logging.String(logging.FieldErrorHint, "check archive.folder in the config"),
		)
		r.publish(ctx, logger, notifications.EventArchiveSkipped, notifications.Payload{
			"folder": r.cfg.Archive.Folder,
		})
		return run, nil
	}

	run.MovedCount = result.Moved
	run.SkippedCount = result.Skipped
	run.MarkFailed(runErr.Error())
	if err := r.store.Update(ctx, run); err != nil {
		logger.Error("failed to persist run failure", logging.Error(err))
	}
	logger.Error("archive run failed",
		logging.Error(runErr),
		logging.Int("moved", result.Moved),
		logging.String(logging.FieldEventType, "run_failure"),
	)
	r.publish(ctx, logger, notifications.EventError, notifications.Payload{
		"context": "archive run",
		"error":   runErr.Error(),
	})
	return run, runErr
}

func (r *Runner) publish(ctx context.Context, logger *slog.Logger, event notifications.Event, payload notifications.Payload) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Publish(ctx, event, payload); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("shutting down, notification not sent", logging.String("event", string(event)))
			return
		}
		logger.Debug("notification failed", logging.String("event", string(event)), logging.Error(err))
	}
}
