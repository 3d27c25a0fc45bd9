package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeArchive(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWatch()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeArchive() error {
	c.Archive.Folder = strings.TrimSpace(c.Archive.Folder)
	if c.Archive.Folder == "" {
		if value, ok := os.LookupEnv("SHELVE_FOLDER"); ok {
			c.Archive.Folder = strings.TrimSpace(value)
		}
	}
	if c.Archive.Folder != "" {
		expanded, err := expandPath(c.Archive.Folder)
		if err != nil {
			return fmt.Errorf("archive.folder: %w", err)
		}
		c.Archive.Folder = expanded
	}
	c.Archive.DateFormat = strings.TrimSpace(c.Archive.DateFormat)
	if c.Archive.DateFormat == "" {
		c.Archive.DateFormat = defaultDateFormat
	}
	c.Archive.BucketFormat = strings.TrimSpace(c.Archive.BucketFormat)
	if c.Archive.BucketFormat == "" {
		c.Archive.BucketFormat = defaultBucketFormat
	}
	if c.Archive.MinAgeDays == 0 {
		c.Archive.MinAgeDays = defaultMinAgeDays
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWatch() {
	if c.Watch.PollInterval <= 0 {
		c.Watch.PollInterval = defaultWatchPollInterval
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("SHELVE_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
