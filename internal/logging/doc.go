// Package logging assembles structured slog loggers and formatting helpers used
// across shelve components.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so runner code can automatically
// tag log lines with run identifiers and trigger surfaces. The package also
// provides a no-op logger for tests and wiring code that cannot fail, plus
// retention pruning for the timestamped log files the watch daemon writes.
//
// Prefer these constructors over hand-rolled slog setup to ensure new
// components emit data with the same shape and routing guarantees as the rest
// of the system.
package logging
