// Package preflight provides readiness checks for the filesystem paths and
// the ntfy endpoint that Shelve depends on.
//
// These checks back the CLI surface:
//   - "shelve status" renders every RunAll result so a missing or unreadable
//     archive folder is visible before the next scheduled pass.
//   - "shelve config validate" runs them after static validation to catch
//     problems that only show up on the live filesystem.
//
// The ntfy check is gated on a configured topic -- without one it is skipped.
package preflight
