package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogsCommandPrintsTrailingLines(t *testing.T) {
	env := setupCLITestEnv(t)
	logPath := filepath.Join(env.cfg.Paths.LogDir, "shelve-20260102T030405.000Z.log")
	if err := os.MkdirAll(env.cfg.Paths.LogDir, 0o755); err != nil {
		t.Fatalf("mkdir log dir: %v", err)
	}
	if err := os.WriteFile(logPath, []byte("first\nsecond\nthird\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "second")
	requireContains(t, out, "third")
	if strings.Contains(out, "first") {
		t.Fatalf("expected trailing lines only, got %q", out)
	}
}

func TestLogsCommandErrsWithoutLogs(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"logs"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "no log files") {
		t.Fatalf("expected no-log-files error, got %v", err)
	}
}
