package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shelve/internal/runlog"
	"shelve/internal/testsupport"
)

func TestArchiveCommandMovesQualifyingNotes(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteNote(t, env.cfg.Archive.Folder, "05-02-20.md")
	testsupport.WriteNote(t, env.cfg.Archive.Folder, "01-01-68.md")

	out, _, err := runCLI(t, []string{"archive"}, env.configPath)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	requireContains(t, out, "Archived 1 note")

	moved := filepath.Join(env.cfg.Archive.Folder, "02-20", "05-02-20.md")
	if _, err := os.Stat(moved); err != nil {
		t.Fatalf("expected note at %s: %v", moved, err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Archive.Folder, "01-01-68.md")); err != nil {
		t.Fatalf("expected future-dated note to stay put: %v", err)
	}

	run, err := env.store.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if run == nil || run.Status != runlog.StatusCompleted {
		t.Fatalf("expected completed run in journal, got %+v", run)
	}
	if run.MovedCount != 1 {
		t.Fatalf("expected 1 moved note, got %d", run.MovedCount)
	}
}

func TestArchiveCommandNothingToArchive(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"archive"}, env.configPath)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	requireContains(t, out, "Nothing to archive")
}

func TestArchiveCommandDryRunLeavesFilesAlone(t *testing.T) {
	env := setupCLITestEnv(t)
	notePath := testsupport.WriteNote(t, env.cfg.Archive.Folder, "05-02-20.md")

	out, _, err := runCLI(t, []string{"archive", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("archive --dry-run: %v", err)
	}
	requireContains(t, out, "05-02-20.md")
	requireContains(t, out, "02-20")
	requireContains(t, out, "Would archive 1 note into 1 monthly folder")

	if _, err := os.Stat(notePath); err != nil {
		t.Fatalf("expected note untouched at %s: %v", notePath, err)
	}

	run, err := env.store.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if run != nil {
		t.Fatalf("expected empty journal after dry run, got %+v", run)
	}
}

func TestArchiveCommandReportsMissingFolder(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.RemoveAll(env.cfg.Archive.Folder); err != nil {
		t.Fatalf("remove folder: %v", err)
	}

	out, _, err := runCLI(t, []string{"archive"}, env.configPath)
	if err != nil {
		t.Fatalf("archive with missing folder: %v", err)
	}
	requireContains(t, out, "Archive folder not found")

	run, err := env.store.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if run == nil || run.Status != runlog.StatusSkipped {
		t.Fatalf("expected skipped run in journal, got %+v", run)
	}
}
