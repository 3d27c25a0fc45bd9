package archive_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shelve/internal/archive"
	"shelve/internal/config"
	"shelve/internal/logging"
	"shelve/internal/services"
	"shelve/internal/testsupport"
)

func newArchiver(t *testing.T, cfg *config.Config) *archive.Archiver {
	t.Helper()
	archiver, err := archive.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("archive.New failed: %v", err)
	}
	return archiver
}

func TestArchiveMovesPastNoteIntoMonthBucket(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteNote(t, cfg.Archive.Folder, "05-02-26.md")
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	result, err := archiver.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Moved != 1 {
		t.Fatalf("expected 1 move, got %d", result.Moved)
	}

	moved := filepath.Join(cfg.Archive.Folder, "02-26", "05-02-26.md")
	if _, err := os.Stat(moved); err != nil {
		t.Fatalf("expected note at %s: %v", moved, err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Archive.Folder, "05-02-26.md")); !os.IsNotExist(err) {
		t.Fatalf("expected source to be gone, stat err: %v", err)
	}
}

func TestArchiveSkipsNonMatchingNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteNote(t, cfg.Archive.Folder, "2026-02-10.md")
	testsupport.WriteNote(t, cfg.Archive.Folder, "meeting notes.md")
	testsupport.WriteNote(t, cfg.Archive.Folder, "x05-02-26.md")
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	result, err := archiver.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Moved != 0 {
		t.Fatalf("expected no moves, got %d", result.Moved)
	}
	for _, name := range []string{"2026-02-10.md", "meeting notes.md", "x05-02-26.md"} {
		if _, err := os.Stat(filepath.Join(cfg.Archive.Folder, name)); err != nil {
			t.Fatalf("expected %s to stay put: %v", name, err)
		}
	}
}

func TestArchiveParsesMonthNameFormats(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDateFormat("DD-MMM-YY"))
	testsupport.WriteNote(t, cfg.Archive.Folder, "05-feb-20.md")
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	result, err := archiver.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Moved != 1 {
		t.Fatalf("expected lowercase month name to qualify, got %d moves", result.Moved)
	}
	if _, err := os.Stat(filepath.Join(cfg.Archive.Folder, "02-20", "05-feb-20.md")); err != nil {
		t.Fatalf("expected note in bucket under its original name: %v", err)
	}
}

func TestThresholdBoundary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMinAgeDays(3))
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	threshold := archive.Threshold(now, 3)
	want := time.Date(2026, time.February, 8, 0, 0, 0, 0, time.UTC)
	if !threshold.Equal(want) {
		t.Fatalf("Threshold = %v, want %v", threshold, want)
	}

	// A note dated exactly at the threshold stays; one day earlier qualifies.
	if _, ok := archiver.Classify("08-02-26.md", threshold); ok {
		t.Fatal("expected threshold-dated note to stay")
	}
	bucket, ok := archiver.Classify("07-02-26.md", threshold)
	if !ok {
		t.Fatal("expected earlier note to qualify")
	}
	if bucket != "02-26" {
		t.Fatalf("unexpected bucket: %q", bucket)
	}
}

func TestMinAgeOneKeepsToday(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteNote(t, cfg.Archive.Folder, "10-02-26.md")
	testsupport.WriteNote(t, cfg.Archive.Folder, "09-02-26.md")
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	result, err := archiver.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Moved != 1 {
		t.Fatalf("expected only yesterday's note to move, got %d", result.Moved)
	}
	if _, err := os.Stat(filepath.Join(cfg.Archive.Folder, "10-02-26.md")); err != nil {
		t.Fatalf("expected today's note to stay: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Archive.Folder, "02-26", "09-02-26.md")); err != nil {
		t.Fatalf("expected yesterday's note in bucket: %v", err)
	}
}

func TestArchiveIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteNote(t, cfg.Archive.Folder, "05-02-26.md")
	testsupport.WriteNote(t, cfg.Archive.Folder, "20-01-26.md")
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	first, err := archiver.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if first.Moved != 2 {
		t.Fatalf("expected 2 moves, got %d", first.Moved)
	}

	second, err := archiver.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if second.Moved != 0 {
		t.Fatalf("expected second run to move nothing, got %d", second.Moved)
	}
}

func TestArchiveOverwritesExistingDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := testsupport.WriteNote(t, cfg.Archive.Folder, "05-02-26.md")
	if err := os.WriteFile(source, []byte("fresh body"), 0o644); err != nil {
		t.Fatalf("rewrite source: %v", err)
	}
	stale := filepath.Join(cfg.Archive.Folder, "02-26", "05-02-26.md")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatalf("mkdir bucket: %v", err)
	}
	if err := os.WriteFile(stale, []byte("stale body"), 0o644); err != nil {
		t.Fatalf("write stale destination: %v", err)
	}
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	result, err := archiver.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Moved != 1 {
		t.Fatalf("expected 1 move, got %d", result.Moved)
	}

	body, err := os.ReadFile(stale)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(body) != "fresh body" {
		t.Fatalf("expected destination replaced, got %q", body)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("expected source to be gone, stat err: %v", err)
	}
}

func TestArchiveWithoutOverwriteSkipsConflicts(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithOverwrite(false))
	source := testsupport.WriteNote(t, cfg.Archive.Folder, "05-02-26.md")
	stale := filepath.Join(cfg.Archive.Folder, "02-26", "05-02-26.md")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatalf("mkdir bucket: %v", err)
	}
	if err := os.WriteFile(stale, []byte("stale body"), 0o644); err != nil {
		t.Fatalf("write stale destination: %v", err)
	}
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	result, err := archiver.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Moved != 0 || result.Skipped != 1 {
		t.Fatalf("expected 0 moved 1 skipped, got %d/%d", result.Moved, result.Skipped)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("expected source to stay put: %v", err)
	}
	body, err := os.ReadFile(stale)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(body) != "stale body" {
		t.Fatalf("expected destination untouched, got %q", body)
	}
}

func TestArchiveMissingFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Archive.Folder = filepath.Join(cfg.Archive.Folder, "absent")
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	result, err := archiver.Run(context.Background(), now)
	if err == nil {
		t.Fatal("expected error for missing folder")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if result.Moved != 0 {
		t.Fatalf("expected no moves, got %d", result.Moved)
	}
}

func TestArchiveRejectsFileAsFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Archive.Folder = testsupport.WriteNote(t, cfg.Archive.Folder, "plain.md")
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	_, err := archiver.Run(context.Background(), now)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-directory, got %v", err)
	}
}

type failingFS struct {
	archive.FS
	failName string
}

func (f failingFS) Move(src, dst string) error {
	if filepath.Base(src) == f.failName {
		return errors.New("disk detached")
	}
	return f.FS.Move(src, dst)
}

func TestArchiveAbortsOnMoveFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteNote(t, cfg.Archive.Folder, "04-02-26.md")
	testsupport.WriteNote(t, cfg.Archive.Folder, "05-02-26.md")
	archiver, err := archive.NewWithFS(cfg, logging.NewNop(), failingFS{FS: archive.OSFS{}, failName: "05-02-26.md"})
	if err != nil {
		t.Fatalf("archive.NewWithFS failed: %v", err)
	}

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	result, err := archiver.Run(context.Background(), now)
	if err == nil {
		t.Fatal("expected move failure to propagate")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
	if result.Moved != 1 {
		t.Fatalf("expected partial count 1, got %d", result.Moved)
	}
	if _, err := os.Stat(filepath.Join(cfg.Archive.Folder, "02-26", "04-02-26.md")); err != nil {
		t.Fatalf("expected first note moved: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Archive.Folder, "05-02-26.md")); err != nil {
		t.Fatalf("expected failing note still in source: %v", err)
	}
}

func TestPlanIgnoresSubfolders(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteNote(t, cfg.Archive.Folder, filepath.Join("01-26", "05-01-26.md"))
	testsupport.WriteNote(t, cfg.Archive.Folder, "05-02-26.md")
	archiver := newArchiver(t, cfg)

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	moves, err := archiver.Plan(context.Background(), archive.Threshold(now, 1))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(moves) != 1 {
		t.Fatalf("expected 1 planned move, got %d", len(moves))
	}
	if moves[0].Name != "05-02-26.md" || moves[0].Bucket != "02-26" {
		t.Fatalf("unexpected plan entry: %+v", moves[0])
	}
}
