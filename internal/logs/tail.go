package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// CurrentPointerName is the stable pointer the watcher maintains next to its
// timestamped run logs.
const CurrentPointerName = "shelve.log"

const followPollInterval = 500 * time.Millisecond

// TailResult carries trailing lines plus the end-of-file offset a follower
// should resume from.
type TailResult struct {
	Lines  []string
	Offset int64
}

// CurrentPath resolves the active log file inside logDir. It prefers the
// shelve.log pointer (symlink or hard link), falling back to the newest
// timestamped run log when the pointer is absent.
func CurrentPath(logDir string) (string, error) {
	pointer := filepath.Join(logDir, CurrentPointerName)
	if target, err := os.Readlink(pointer); err == nil {
		if !filepath.IsAbs(target) {
			target = filepath.Join(logDir, target)
		}
		return target, nil
	}
	if info, err := os.Stat(pointer); err == nil && !info.IsDir() {
		return pointer, nil
	}

	matches, err := filepath.Glob(filepath.Join(logDir, "shelve-*.log"))
	if err != nil {
		return "", fmt.Errorf("list log files: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no log files in %s (has the watcher run yet?)", logDir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// Tail returns up to limit trailing lines of the file and the offset at which
// a follower should resume. A missing file yields an empty result, not an
// error, so callers can start following before the first write.
func Tail(path string, limit int) (TailResult, error) {
	var result TailResult

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		offset, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return result, fmt.Errorf("seek log file: %w", err)
		}
		result.Offset = offset
		return result, nil
	}

	scanner := newLineScanner(file)
	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read log file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return result, fmt.Errorf("seek log file: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}

	result.Lines = lines
	result.Offset = offset
	return result, nil
}

// Follow polls the file for lines appended after offset and hands each one to
// emit, returning when ctx is cancelled. A truncated file restarts from the
// beginning so rotation does not wedge the follower.
func Follow(ctx context.Context, path string, offset int64, emit func(string)) error {
	ticker := time.NewTicker(followPollInterval)
	defer ticker.Stop()

	for {
		lines, newOffset, err := readForward(path, offset)
		if err != nil {
			return err
		}
		for _, line := range lines {
			emit(line)
		}
		offset = newOffset

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func readForward(path string, offset int64) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}

	scanner := newLineScanner(file)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log file: %w", err)
	}

	newOffset, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, fmt.Errorf("determine log offset: %w", err)
	}
	return lines, newOffset, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}
