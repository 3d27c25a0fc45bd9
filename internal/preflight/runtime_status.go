package preflight

import (
	"context"
	"strings"

	"shelve/internal/config"
)

// CheckNtfyFromConfig evaluates notification status from config and connectivity.
// An unset topic counts as passing: notifications are optional.
func CheckNtfyFromConfig(cfg *config.Config) Result {
	const name = "ntfy"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	check := CheckNtfy(context.Background(), cfg.Notifications.NtfyTopic)
	if check.Passed {
		return Result{Name: name, Passed: true, Detail: check.Detail}
	}
	return Result{Name: name, Detail: check.Detail}
}
