package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteNote creates a note file with a small markdown body under folder and
// returns its path.
func WriteNote(t testing.TB, folder, name string) string {
	t.Helper()

	path := filepath.Join(folder, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("# "+name+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
