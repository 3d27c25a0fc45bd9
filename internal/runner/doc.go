// Package runner coordinates a single archive pass end to end: it takes the
// run lock, records the run in the journal, invokes the archiver, and
// publishes the outcome.
//
// Concurrency control lives here rather than in the archiver. A flock in the
// state directory rules out overlapping passes from separate processes, and
// an in-process guard rules out overlap between the watch loop and a manual
// invocation sharing one Runner.
package runner
