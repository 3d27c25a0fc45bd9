package logging_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelve/internal/config"
	"shelve/internal/logging"
	"shelve/internal/services"
)

func newFileLogger(t *testing.T, format, level string) (*slog.Logger, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "shelve-test.log")
	logger, err := logging.New(logging.Options{
		Format:           format,
		Level:            level,
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return logger, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Info("startup message")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, "shelve.log"))
	if !strings.Contains(content, "startup message") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "info")

	logger.Info("message without caller")

	if content := readLog(t, logPath); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "debug")

	logger.Info("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestNewJSONLogger(t *testing.T) {
	logger, logPath := newFileLogger(t, "json", "info")

	logger.Info("json message", logging.String("k", "v"))

	line := strings.TrimSpace(readLog(t, logPath))
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}
	if decoded["msg"] != "json message" || decoded["level"] != "info" || decoded["k"] != "v" {
		t.Fatalf("unexpected decoded line: %#v", decoded)
	}
	if _, ok := decoded["ts"]; !ok {
		t.Fatal("expected ts key in JSON output")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "invalid")

	logger.Debug("hidden")
	logger.Info("visible")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") {
		t.Fatalf("expected debug output suppressed, got %q", content)
	}
	if !strings.Contains(content, "visible") {
		t.Fatalf("expected info output, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestComponentPrefixInConsoleOutput(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "info")

	logging.NewComponentLogger(logger, "archiver").Info("bucket created", logging.String("bucket", "02-26"))

	content := readLog(t, logPath)
	if !strings.Contains(content, "archiver: bucket created") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("expected component attr folded into prefix, got %q", content)
	}
	if !strings.Contains(content, "bucket=02-26") {
		t.Fatalf("expected key=value attrs, got %q", content)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "info")

	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-xyz")
	ctx = services.WithTrigger(ctx, "auto")

	logging.WithContext(ctx, logger).Info("contextual log")

	content := readLog(t, logPath)
	if !strings.Contains(content, "run_id=run-xyz") {
		t.Fatalf("expected run id field, got %q", content)
	}
	if !strings.Contains(content, "trigger=auto") {
		t.Fatalf("expected trigger field, got %q", content)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "info")

	logging.WarnWithContext(logger, "notify send failed", "notify_failed")

	content := readLog(t, logPath)
	for _, fragment := range []string{"event_type=notify_failed", "error_hint=", "impact="} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("expected %q in warn output, got %q", fragment, content)
		}
	}
}
