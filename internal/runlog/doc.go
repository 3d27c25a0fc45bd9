// Package runlog persists archive run history and the automatic-run gate in
// SQLite.
//
// The Store manages database connections, schema initialization, run records,
// and the single-row marker remembering the last calendar day an automatic run
// completed. Runs capture the trigger surface, outcome, and move counts so the
// CLI can explain what happened without re-reading log files.
//
// The database is transient operational state rather than a long-term archive.
// Schema changes bump the version in schema.go; users delete the journal to
// adopt the new schema.
package runlog
