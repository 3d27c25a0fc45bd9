package services_test

import (
	"errors"
	"strings"
	"testing"

	"shelve/internal/runlog"
	"shelve/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransient, "archive", "move", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"archive", "move", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "archive", "plan", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected nil marker to default to transient, got %v", err)
	}
}

func TestFailureStatusMapping(t *testing.T) {
	notFoundErr := services.Wrap(services.ErrNotFound, "archive", "plan", "folder missing", nil)
	if status := services.FailureStatus(notFoundErr); status != runlog.StatusSkipped {
		t.Fatalf("expected skipped for not-found error, got %s", status)
	}

	transientErr := services.Wrap(services.ErrTransient, "archive", "move", "move failed", errors.New("io"))
	if status := services.FailureStatus(transientErr); status != runlog.StatusFailed {
		t.Fatalf("expected failed for transient error, got %s", status)
	}

	if status := services.FailureStatus(nil); status != runlog.StatusFailed {
		t.Fatalf("expected failed for nil error, got %s", status)
	}
}
