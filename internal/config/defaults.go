package config

const (
	defaultBaseURL             = "http://127.0.0.1:3060"
	defaultTimeoutSeconds      = 10
	defaultLogDir              = "~/.local/share/clio/logs"
	defaultStateDir            = "~/.local/share/clio"
	defaultExportDir           = "~/clio-exports"
	defaultPollIntervalSeconds = 1
	defaultWatchTimeoutSeconds = 600
	defaultRange               = "30d"
	defaultGrouping            = "weekly"
	defaultTop                 = 10
	defaultSearchThreshold     = 0.6
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Paths: Paths{
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
			ExportDir: defaultExportDir,
		},
		Sync: Sync{
			PollIntervalSeconds: defaultPollIntervalSeconds,
			WatchTimeoutSeconds: defaultWatchTimeoutSeconds,
		},
		Analytics: Analytics{
			DefaultRange:    defaultRange,
			DefaultGrouping: defaultGrouping,
			DefaultTop:      defaultTop,
		},
		Search: Search{
			Threshold: defaultSearchThreshold,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
