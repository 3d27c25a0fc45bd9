// Package logs provides tail and follow helpers for the watcher's log files.
//
// It reads trailing lines with bounded memory usage, resolves the shelve.log
// pointer to the active timestamped run log, and powers follow-mode updates
// for `shelve logs --follow`. Callers supply a context so background polling
// shuts down cleanly when the CLI exits.
package logs
