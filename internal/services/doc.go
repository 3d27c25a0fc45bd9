// Package services defines shared utilities consumed by the archive runner and
// the trigger surfaces around it.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and trigger names for logging
//     and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent run journal statuses (failed vs skipped).
//
// Use these helpers when wiring new runner logic so operational behaviour
// (error handling, observability) stays uniform across trigger surfaces.
package services
