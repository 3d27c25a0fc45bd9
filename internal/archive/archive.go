package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"shelve/internal/config"
	"shelve/internal/datefmt"
	"shelve/internal/logging"
	"shelve/internal/services"
)

// Move pairs one qualifying note with the month bucket it belongs to.
type Move struct {
	Name   string
	Bucket string
}

// Result summarizes an applied run.
type Result struct {
	Moved   int
	Skipped int
}

// Archiver decides which notes are past and relocates them into month buckets.
type Archiver struct {
	folder       string
	noteFormat   *datefmt.Format
	bucketFormat *datefmt.Format
	minAgeDays   int
	overwrite    bool
	fsys         FS
	logger       *slog.Logger
}

// New constructs an archiver backed by the host filesystem.
func New(cfg *config.Config, logger *slog.Logger) (*Archiver, error) {
	return NewWithFS(cfg, logger, OSFS{})
}

// NewWithFS allows injecting the filesystem (used in tests).
func NewWithFS(cfg *config.Config, logger *slog.Logger, fsys FS) (*Archiver, error) {
	noteFormat, err := datefmt.Compile(cfg.Archive.DateFormat)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "archive", "compile date format", "Invalid archive.date_format", err)
	}
	bucketFormat, err := datefmt.Compile(cfg.Archive.BucketFormat)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "archive", "compile bucket format", "Invalid archive.bucket_format", err)
	}
	return &Archiver{
		folder:       cfg.Archive.Folder,
		noteFormat:   noteFormat,
		bucketFormat: bucketFormat,
		minAgeDays:   cfg.Archive.MinAgeDays,
		overwrite:    cfg.Archive.OverwriteExisting,
		fsys:         fsys,
		logger:       logging.NewComponentLogger(logger, "archiver"),
	}, nil
}

// Threshold returns the cutoff for a run happening at now. Notes dated
// strictly before the cutoff count as past. The local calendar date is
// normalized to midnight UTC so it compares cleanly against parsed filename
// dates.
func Threshold(now time.Time, minAgeDays int) time.Time {
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return startOfDay.AddDate(0, 0, -(minAgeDays - 1))
}

// Classify returns the month bucket for name when its stem parses as a date
// before threshold. The second return is false when the name is not a
// candidate or is too recent.
func (a *Archiver) Classify(name string, threshold time.Time) (string, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parsed, ok := a.noteFormat.Parse(stem)
	if !ok {
		return "", false
	}
	if !parsed.Before(threshold) {
		return "", false
	}
	return a.bucketFormat.Format(parsed), true
}

// Plan enumerates the folder's immediate file children and classifies each
// against threshold. Subfolders, including previously created buckets, are
// never descended into. A missing or non-directory folder maps to
// services.ErrNotFound so callers can report a skip instead of a failure.
func (a *Archiver) Plan(ctx context.Context, threshold time.Time) ([]Move, error) {
	logger := logging.WithContext(ctx, a.logger)
	info, err := a.fsys.Stat(a.folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "archive", "locate folder", fmt.Sprintf("Archive folder %s does not exist", a.folder), err)
		}
		return nil, services.Wrap(services.ErrTransient, "archive", "locate folder", fmt.Sprintf("Cannot inspect archive folder %s", a.folder), err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrNotFound, "archive", "locate folder", fmt.Sprintf("%s is not a folder", a.folder), nil)
	}
	entries, err := a.fsys.ReadDir(a.folder)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "archive", "list folder", fmt.Sprintf("Cannot list archive folder %s", a.folder), err)
	}
	moves := make([]Move, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		bucket, ok := a.Classify(entry.Name(), threshold)
		if !ok {
			continue
		}
		moves = append(moves, Move{Name: entry.Name(), Bucket: bucket})
	}
	logger.Debug(
		"archive plan ready",
		logging.Int("entries", len(entries)),
		logging.Int("qualifying", len(moves)),
		logging.String("threshold", threshold.Format("2006-01-02")),
	)
	return moves, nil
}

// Apply creates the distinct bucket folders, then moves each planned note into
// place. The first I/O failure aborts the remainder: notes already moved stay
// moved, and the partial counts come back alongside the error. Cancellation is
// honored between moves.
func (a *Archiver) Apply(ctx context.Context, moves []Move) (Result, error) {
	logger := logging.WithContext(ctx, a.logger)
	var result Result
	created := make(map[string]struct{}, len(moves))
	for _, planned := range moves {
		if _, ok := created[planned.Bucket]; ok {
			continue
		}
		bucketPath := filepath.Join(a.folder, planned.Bucket)
		if err := a.fsys.MkdirAll(bucketPath, 0o755); err != nil {
			return result, services.Wrap(services.ErrTransient, "archive", "create bucket", fmt.Sprintf("Cannot create bucket folder %s", planned.Bucket), err)
		}
		created[planned.Bucket] = struct{}{}
	}
	for _, planned := range moves {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		source := filepath.Join(a.folder, planned.Name)
		destination := filepath.Join(a.folder, planned.Bucket, planned.Name)
		if _, err := a.fsys.Stat(destination); err == nil {
			if !a.overwrite {
				result.Skipped++
				logger.Info(
					"destination occupied, leaving note in place",
					logging.String("note", planned.Name),
					logging.String("bucket", planned.Bucket),
				)
				continue
			}
			if err := a.fsys.Remove(destination); err != nil {
				return result, services.Wrap(services.ErrTransient, "archive", "replace note", fmt.Sprintf("Cannot replace %s in %s", planned.Name, planned.Bucket), err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return result, services.Wrap(services.ErrTransient, "archive", "inspect destination", fmt.Sprintf("Cannot inspect destination for %s", planned.Name), err)
		}
		if err := a.fsys.Move(source, destination); err != nil {
			return result, services.Wrap(services.ErrTransient, "archive", "move note", fmt.Sprintf("Cannot move %s into %s", planned.Name, planned.Bucket), err)
		}
		result.Moved++
		logger.Info(
			"note archived",
			logging.String("note", planned.Name),
			logging.String("bucket", planned.Bucket),
		)
	}
	return result, nil
}

// Run plans against the threshold derived from now and applies the plan.
func (a *Archiver) Run(ctx context.Context, now time.Time) (Result, error) {
	moves, err := a.Plan(ctx, Threshold(now, a.minAgeDays))
	if err != nil {
		return Result{}, err
	}
	return a.Apply(ctx, moves)
}
