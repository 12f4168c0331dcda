package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeAPI(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSync()
	c.normalizeAnalytics()
	c.normalizeSearch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeAPI() error {
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	if c.API.BaseURL == "" {
		if value, ok := os.LookupEnv("KLEIO_API_URL"); ok {
			c.API.BaseURL = strings.TrimSpace(value)
		}
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")

	c.API.Token = strings.TrimSpace(c.API.Token)
	if c.API.Token == "" {
		if value, ok := os.LookupEnv("KLEIO_API_TOKEN"); ok {
			c.API.Token = strings.TrimSpace(value)
		}
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = defaultTimeoutSeconds
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
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSync() {
	if c.Sync.PollIntervalSeconds <= 0 {
		c.Sync.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if c.Sync.WatchTimeoutSeconds <= 0 {
		c.Sync.WatchTimeoutSeconds = defaultWatchTimeoutSeconds
	}
}

func (c *Config) normalizeAnalytics() {
	c.Analytics.DefaultRange = strings.ToLower(strings.TrimSpace(c.Analytics.DefaultRange))
	if c.Analytics.DefaultRange == "" {
		c.Analytics.DefaultRange = defaultRange
	}
	c.Analytics.DefaultGrouping = strings.ToLower(strings.TrimSpace(c.Analytics.DefaultGrouping))
	if c.Analytics.DefaultGrouping == "" {
		c.Analytics.DefaultGrouping = defaultGrouping
	}
	if c.Analytics.DefaultTop <= 0 {
		c.Analytics.DefaultTop = defaultTop
	}
}

func (c *Config) normalizeSearch() {
	if c.Search.Threshold <= 0 || c.Search.Threshold > 1 {
		c.Search.Threshold = defaultSearchThreshold
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
