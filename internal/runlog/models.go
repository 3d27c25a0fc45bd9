package runlog

import (
	"strings"
	"time"
)

// Trigger identifies the surface that started an archive run.
type Trigger string

const (
	TriggerManual Trigger = "manual"
	TriggerAuto   Trigger = "auto"
	TriggerWatch  Trigger = "watch"
)

var allTriggers = []Trigger{
	TriggerManual,
	TriggerAuto,
	TriggerWatch,
}

var triggerSet = func() map[Trigger]struct{} {
	set := make(map[Trigger]struct{}, len(allTriggers))
	for _, trigger := range allTriggers {
		set[trigger] = struct{}{}
	}
	return set
}()

// Status represents the lifecycle of a recorded run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusRunning,
	StatusCompleted,
	StatusSkipped,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Run represents one archive run persisted in SQLite.
type Run struct {
	ID           string
	Trigger      Trigger
	Status       Status
	FolderPath   string
	MovedCount   int
	SkippedCount int
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// ParseTrigger converts a string into a known Trigger.
func ParseTrigger(value string) (Trigger, bool) {
	normalized := Trigger(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := triggerSet[normalized]
	return normalized, ok
}

// Finished reports whether the run has reached a terminal status.
func (r Run) Finished() bool {
	return r.Status != StatusRunning && r.Status != ""
}

// Duration returns how long the run took, or zero while it is still in flight.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// MarkCompleted stamps a successful outcome with the final move counts.
func (r *Run) MarkCompleted(moved, skipped int) {
	now := time.Now().UTC()
	r.Status = StatusCompleted
	r.MovedCount = moved
	r.SkippedCount = skipped
	r.ErrorMessage = ""
	r.FinishedAt = &now
}

// MarkSkipped stamps a no-work outcome, typically a missing archive folder.
func (r *Run) MarkSkipped(message string) {
	now := time.Now().UTC()
	r.Status = StatusSkipped
	r.MovedCount = 0
	r.ErrorMessage = message
	r.FinishedAt = &now
}

// MarkFailed stamps a failed outcome with the given error message. Move counts
// already set on the run are preserved so partial progress stays visible.
func (r *Run) MarkFailed(message string) {
	now := time.Now().UTC()
	r.Status = StatusFailed
	r.ErrorMessage = message
	r.FinishedAt = &now
}
