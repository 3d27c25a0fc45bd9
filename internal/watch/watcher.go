package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"shelve/internal/config"
	"shelve/internal/logging"
	"shelve/internal/runlog"
	"shelve/internal/runner"
)

// Runner starts gated archive passes on behalf of the watch loop.
type Runner interface {
	AutoArchiveIfDue(ctx context.Context, trigger runlog.Trigger) (*runlog.Run, bool, error)
}

// Watcher polls on an interval and fires at most one archive pass per
// calendar day. The day gate lives in the run journal, so restarting the
// watcher never repeats a pass that already succeeded today.
type Watcher struct {
	cfg    *config.Config
	logger *slog.Logger
	runner Runner

	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a watcher around the given runner.
func New(cfg *config.Config, r Runner, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || r == nil {
		return nil, errors.New("watcher requires config and runner")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	poll := cfg.WatchInterval()
	if poll <= 0 {
		poll = 5 * time.Minute
	}

	return &Watcher{
		cfg:          cfg,
		logger:       logging.NewComponentLogger(logger, "watcher"),
		runner:       r,
		pollInterval: poll,
	}, nil
}

// Start launches the poll loop. The first pass happens immediately so a
// machine that was asleep at midnight catches up as soon as the watcher runs.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return errors.New("watcher already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.ctx = runCtx
	w.cancel = cancel
	w.running = true

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the poll loop and waits for any in-flight pass to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	w.poll()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	ctx := w.ctx
	if ctx == nil {
		return
	}

	run, ran, err := w.runner.AutoArchiveIfDue(ctx, runlog.TriggerWatch)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, runner.ErrRunInProgress):
		w.logger.Debug("archive pass already running, skipping poll")
		return
	default:
		logging.WarnWithContext(w.logger, "archive pass failed, will retry next poll", "watch_pass_failed",
			logging.Error(err),
			logging.Duration("poll_interval", w.pollInterval),
			logging.Alert("archive_failing"),
		)
		return
	}

	if ran && run != nil {
		w.logger.Debug("watch pass finished",
			logging.String("status", string(run.Status)),
			logging.Int("moved", run.MovedCount),
		)
	}
}
