package archive

import (
	"os"

	"shelve/internal/fileutil"
)

// FS abstracts the file operations archiving performs, letting tests stand in
// for the real filesystem and inject failures that are hard to provoke there.
type FS interface {
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	Move(src, dst string) error
}

// OSFS implements FS against the host filesystem. Moves fall back to a
// verified copy when source and destination sit on different filesystems.
type OSFS struct{}

func (OSFS) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

func (OSFS) ReadDir(path string) ([]os.DirEntry, error) { return os.ReadDir(path) }

func (OSFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

func (OSFS) Remove(path string) error { return os.Remove(path) }

func (OSFS) Move(src, dst string) error { return fileutil.MoveFile(src, dst) }
