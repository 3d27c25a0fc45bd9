// Package archive implements the note archiving decision procedure: scan the
// configured folder's immediate children, strict-parse filenames as dates,
// and move past notes into month-named bucket folders.
package archive
