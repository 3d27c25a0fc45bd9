package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const runColumns = "id, triggered_by, status, folder, moved, skipped, error_message, started_at, finished_at"

// NewRun inserts a run record in the running state and returns it.
func (s *Store) NewRun(ctx context.Context, id string, trigger Trigger, folder string) (*Run, error) {
	if id == "" {
		return nil, errors.New("run id cannot be empty")
	}
	if _, ok := triggerSet[trigger]; !ok {
		return nil, fmt.Errorf("unknown trigger %q", trigger)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO runs (id, triggered_by, status, folder, moved, skipped, started_at)
         VALUES (?, ?, ?, ?, 0, 0, ?)`,
		id,
		trigger,
		StatusRunning,
		nullableString(folder),
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Update persists changes to an existing run record.
func (s *Store) Update(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	_, err := s.execWithRetry(
		ctx,
		`UPDATE runs
         SET triggered_by = ?, status = ?, folder = ?, moved = ?, skipped = ?,
             error_message = ?, finished_at = ?
         WHERE id = ?`,
		run.Trigger,
		run.Status,
		nullableString(run.FolderPath),
		run.MovedCount,
		run.SkippedCount,
		nullableString(run.ErrorMessage),
		nullableTime(run.FinishedAt),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// GetByID fetches a run by identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// Recent returns the newest runs first, up to limit (or all when limit <= 0).
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LastRun returns the most recently started run, or nil when the journal is empty.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT 1`,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	return run, nil
}

// LastCompleted returns the most recent run that finished successfully.
func (s *Store) LastCompleted(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs WHERE status = ? ORDER BY started_at DESC LIMIT 1`,
		StatusCompleted,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last completed run: %w", err)
	}
	return run, nil
}

// Stats returns a count of runs grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT status, COUNT(1) FROM runs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Clear removes all run records from the journal.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

// PruneOlderThan removes finished runs that started before the cutoff.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.execWithRetry(
		ctx,
		`DELETE FROM runs WHERE status != ? AND started_at < ?`,
		StatusRunning,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id           string
		triggerStr   string
		statusStr    string
		folder       sql.NullString
		moved        sql.NullInt64
		skipped      sql.NullInt64
		errorMessage sql.NullString
		startedRaw   sql.NullString
		finishedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&triggerStr,
		&statusStr,
		&folder,
		&moved,
		&skipped,
		&errorMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:           id,
		Trigger:      Trigger(triggerStr),
		Status:       Status(statusStr),
		FolderPath:   folder.String,
		ErrorMessage: errorMessage.String,
	}
	if moved.Valid {
		run.MovedCount = int(moved.Int64)
	}
	if skipped.Valid {
		run.SkippedCount = int(skipped.Int64)
	}

	if started, err := parseTimeString(startedRaw.String); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	v := value.UTC().Format(time.RFC3339Nano)
	return v
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
