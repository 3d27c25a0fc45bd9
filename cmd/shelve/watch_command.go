package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"shelve/internal/logging"
	"shelve/internal/runlog"
	"shelve/internal/runner"
	"shelve/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the archive watcher in the foreground",
		Long: "Watch polls on watch.poll_interval and performs at most one archive pass per\n" +
			"calendar day. Run it under a process supervisor or a user service to get\n" +
			"hands-off daily archiving.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchProcess(cmd.Context(), ctx)
		},
	}
}

func runWatchProcess(cmdCtx context.Context, ctx *commandContext) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("shelve-%s.log", runID))
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update shelve.log link: %v\n", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, cfg.Paths.LogDir, "shelve-*.log", logPath)

	pidPath := filepath.Join(cfg.Paths.StateDir, "shelve.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := runlog.Open(cfg)
	if err != nil {
		logger.Error("open run journal", logging.Error(err))
		return err
	}
	defer store.Close()
	pruneJournal(signalCtx, store, cfg.Logging.RetentionDays, logger)

	r, err := runner.New(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}
	w, err := watch.New(cfg, r, logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Start(signalCtx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	logger.Info("shelve watcher started",
		logging.String("folder", cfg.Archive.Folder),
		logging.Duration("poll_interval", cfg.WatchInterval()),
	)

	<-signalCtx.Done()
	w.Stop()
	logger.Info("shelve watcher shutting down")
	return nil
}

// pruneJournal applies the log retention window to run history so the journal
// does not grow without bound on long-lived watchers.
func pruneJournal(ctx context.Context, store *runlog.Store, retentionDays int, logger *slog.Logger) {
	if retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	pruned, err := store.PruneOlderThan(ctx, cutoff)
	if err != nil {
		logger.Warn("run journal prune failed", logging.Error(err))
		return
	}
	if pruned > 0 {
		logger.Debug("run journal pruned", logging.Int64("removed", pruned))
	}
}

func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := filepath.Join(logDir, "shelve.log")
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
