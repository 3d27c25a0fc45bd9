package config

import (
	"errors"
	"fmt"

	"shelve/internal/datefmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateArchive(); err != nil {
		return err
	}
	if err := c.validateIntervals(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateArchive() error {
	if c.Archive.Folder == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shelve/config.toml"
		}
		return fmt.Errorf("archive.folder is required. Set SHELVE_FOLDER env var or edit %s (create with 'shelve config init')", defaultPath)
	}
	if c.Archive.MinAgeDays < 1 {
		return errors.New("archive.min_age_days must be at least 1")
	}
	format, err := datefmt.Compile(c.Archive.DateFormat)
	if err != nil {
		return fmt.Errorf("archive.date_format: %w", err)
	}
	if !format.Complete() {
		return errors.New("archive.date_format must include day, month, and year tokens")
	}
	if _, err := datefmt.Compile(c.Archive.BucketFormat); err != nil {
		return fmt.Errorf("archive.bucket_format: %w", err)
	}
	return nil
}

func (c *Config) validateIntervals() error {
	return ensurePositiveMap(map[string]int{
		"watch.poll_interval":           c.Watch.PollInterval,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
