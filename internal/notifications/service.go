package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"shelve/internal/config"
)

const userAgent = "Shelve-Go/0.1.0"

// Event identifies a notification-worthy moment in the archive lifecycle.
type Event string

const (
	// EventArchiveCompleted fires after a run that scanned the folder, even
	// when nothing qualified for archiving.
	EventArchiveCompleted Event = "archive_completed"
	// EventArchiveSkipped fires when a run could not scan because the
	// configured folder is missing.
	EventArchiveSkipped Event = "archive_skipped"
	// EventError fires when a run fails partway through.
	EventError Event = "error"
	// EventTest exercises the delivery path on demand.
	EventTest Event = "test"
)

// Payload carries event-specific fields used to format the outgoing message.
type Payload map[string]string

// Service defines the notification surface exposed to run components.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := cfg.NotificationTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		enabled: map[Event]bool{
			EventArchiveCompleted: cfg.Notifications.Archive,
			EventArchiveSkipped:   cfg.Notifications.Errors,
			EventError:            cfg.Notifications.Errors,
			EventTest:             true,
		},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	enabled  map[Event]bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	if !n.enabled[event] {
		return nil
	}
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func format(event Event, payload Payload) (message, bool) {
	switch event {
	case EventArchiveCompleted:
		moved := strings.TrimSpace(payload["moved"])
		if moved == "" {
			moved = "0"
		}
		noun := "notes"
		if moved == "1" {
			noun = "note"
		}
		body := fmt.Sprintf("Archived %s %s from %s", moved, noun, filepath.Base(strings.TrimSpace(payload["folder"])))
		if skipped := strings.TrimSpace(payload["skipped"]); skipped != "" && skipped != "0" {
			body = fmt.Sprintf("%s (%s left in place)", body, skipped)
		}
		return message{
			title: "Shelve - Archive Complete",
			body:  body,
			tags:  []string{"shelve", "archive", "completed"},
		}, true
	case EventArchiveSkipped:
		return message{
			title: "Shelve - Folder Missing",
			body:  fmt.Sprintf("Archive folder not found: %s", strings.TrimSpace(payload["folder"])),
			tags:  []string{"shelve", "archive", "skipped"},
		}, true
	case EventError:
		var builder strings.Builder
		builder.WriteString("Error")
		if label := strings.TrimSpace(payload["context"]); label != "" {
			builder.WriteString(" with ")
			builder.WriteString(label)
		}
		builder.WriteString(": ")
		detail := strings.TrimSpace(payload["error"])
		if detail == "" {
			detail = "unknown"
		}
		builder.WriteString(detail)
		return message{
			title:    "Shelve - Error",
			body:     builder.String(),
			tags:     []string{"shelve", "error", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title:    "Shelve - Test",
			body:     "Notification system test",
			tags:     []string{"shelve", "test"},
			priority: "low",
		}, true
	}
	return message{}, false
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
