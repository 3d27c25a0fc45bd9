package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the calendar-day format persisted by the automatic-run gate.
const DayLayout = "2006-01-02"

// AutoRunDay returns the calendar day of the last successful automatic run.
// The second return value is false when no automatic run has ever completed.
func (s *Store) AutoRunDay(ctx context.Context) (string, bool, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT last_day FROM auto_gate WHERE id = 1`)
	var day string
	if err := row.Scan(&day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read auto gate: %w", err)
	}
	return day, day != "", nil
}

// MarkAutoRunDay records the calendar day of a successful automatic run.
// Only advance the marker after the run completes; failures must leave it
// untouched so the next startup retries.
func (s *Store) MarkAutoRunDay(ctx context.Context, day string) error {
	day = strings.TrimSpace(day)
	if day == "" {
		return errors.New("day cannot be empty")
	}
	if _, err := time.Parse(DayLayout, day); err != nil {
		return fmt.Errorf("invalid gate day %q: %w", day, err)
	}

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO auto_gate (id, last_day, updated_at) VALUES (1, ?, ?)
         ON CONFLICT (id) DO UPDATE SET last_day = excluded.last_day, updated_at = excluded.updated_at`,
		day,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("mark auto run day: %w", err)
	}
	return nil
}
