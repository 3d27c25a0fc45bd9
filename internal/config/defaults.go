package config

const (
	defaultDateFormat           = "DD-MM-YY"
	defaultBucketFormat         = "MM-YY"
	defaultMinAgeDays           = 1
	defaultOverwriteExisting    = true
	defaultWatchPollInterval    = 300
	defaultLogDir               = "~/.local/share/shelve/logs"
	defaultStateDir             = "~/.local/share/shelve"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogRetentionDays     = 60
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Archive: Archive{
			DateFormat:        defaultDateFormat,
			BucketFormat:      defaultBucketFormat,
			MinAgeDays:        defaultMinAgeDays,
			OverwriteExisting: defaultOverwriteExisting,
		},
		Watch: Watch{
			PollInterval: defaultWatchPollInterval,
		},
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Archive:        true,
			Errors:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
