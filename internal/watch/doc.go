// Package watch runs the background poll loop for the shelve daemon. Each
// tick asks the runner for a day-gated archive pass, so the loop itself stays
// free of scheduling state and survives restarts without double-running.
package watch
