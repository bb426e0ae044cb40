package config

import (
	"fmt"

	"github.com/tenebris-tech/docxoutline/outline"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := outline.ParseOutputFormat(c.Output); err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	return nil
}

// OutputFormat returns the parsed output format. Call Validate first.
func (c *Config) OutputFormat() outline.OutputFormat {
	f, _ := outline.ParseOutputFormat(c.Output)
	return f
}
