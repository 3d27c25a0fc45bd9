package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"shelve/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The archive folder is created so runs against it succeed by default.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Archive.Folder = filepath.Join(base, "notes")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := os.MkdirAll(builder.cfg.Archive.Folder, 0o755); err != nil {
		t.Fatalf("mkdir notes folder: %v", err)
	}

	return builder.cfg
}

// WithDateFormat overrides the note filename date format.
func WithDateFormat(pattern string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.DateFormat = pattern
	}
}

// WithMinAgeDays overrides the minimum note age.
func WithMinAgeDays(days int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.MinAgeDays = days
	}
}

// WithOverwrite toggles destination overwrite behavior.
func WithOverwrite(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.OverwriteExisting = enabled
	}
}
