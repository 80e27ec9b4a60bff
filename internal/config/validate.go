package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateHarvest(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	if strings.TrimSpace(c.Source.BaseURL) == "" {
		return errors.New("source.base_url must be set")
	}
	if strings.TrimSpace(c.Source.RatingsPath) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/ratingsync/config.toml"
		}
		return fmt.Errorf("source.ratings_path is required (the user rating-list path on the source site). Edit %s (create with 'ratingsync config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateHarvest() error {
	if c.Harvest.Concurrency > 16 {
		return errors.New("harvest.concurrency must be 16 or lower to keep request rates polite")
	}
	if c.Harvest.MaxPages < 0 {
		return errors.New("harvest.max_pages must not be negative")
	}
	if c.Harvest.MaxItems < 0 {
		return errors.New("harvest.max_items must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
