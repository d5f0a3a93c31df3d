package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Layer) == "" {
		return fmt.Errorf("layer is required")
	}
	if c.NUTS == "" || c.GADM == "" {
		return fmt.Errorf("both nuts and gadm dataset paths are required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q, must be text or json", c.LogFormat)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q, must be text or json", c.Format)
	}
	return nil
}

// SlogLevel returns the configured log level; verbose forces debug.
func (c *Config) SlogLevel() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
