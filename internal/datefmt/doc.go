// Package datefmt compiles filename date patterns such as "DD-MM-YY" into
// strict parsers and formatters.
//
// Patterns use the day/month/year token syntax common to note-taking apps
// rather than Go reference-time layouts. Parsing is deliberately strict: a
// value only counts as a date when formatting the parsed result reproduces
// the input exactly, so "5-2-26" never satisfies "DD-MM-YY".
package datefmt
