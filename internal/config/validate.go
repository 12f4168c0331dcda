package config

import (
	"errors"
	"fmt"
	"net/url"
)

var validGroupings = map[string]bool{"daily": true, "weekly": true, "monthly": true}

var validRanges = map[string]bool{"7d": true, "30d": true, "90d": true, "1y": true, "all": true}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateAnalytics(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/clio/config.toml"
		}
		return fmt.Errorf("api.base_url is required. Set KLEIO_API_URL env var or edit %s (create with 'clio config init')", defaultPath)
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("api.base_url must use http or https")
	}
	return nil
}

func (c *Config) validateAnalytics() error {
	if !validGroupings[c.Analytics.DefaultGrouping] {
		return fmt.Errorf("analytics.default_grouping %q must be daily, weekly, or monthly", c.Analytics.DefaultGrouping)
	}
	if !validRanges[c.Analytics.DefaultRange] {
		return fmt.Errorf("analytics.default_range %q must be one of 7d, 30d, 90d, 1y, all", c.Analytics.DefaultRange)
	}
	return nil
}
