package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateColumns(); err != nil {
		return err
	}
	if _, err := c.CutoffDate(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.Input == "" {
		return errors.New("paths.input must be set")
	}
	if c.Paths.Output == "" {
		return errors.New("paths.output must be set")
	}
	if c.Paths.Input == c.Paths.Output {
		return fmt.Errorf("paths.output must differ from paths.input (%s)", c.Paths.Input)
	}
	return nil
}

func (c *Config) validateColumns() error {
	seen := map[string]string{}
	for _, col := range []struct{ key, value string }{
		{"columns.filing_id", c.Columns.FilingID},
		{"columns.designation", c.Columns.Designation},
		{"columns.filing_date", c.Columns.FilingDate},
	} {
		if prev, ok := seen[col.value]; ok {
			return fmt.Errorf("%s duplicates %s (%q)", col.key, prev, col.value)
		}
		seen[col.value] = col.key
	}
	return nil
}

func (c *Config) validateRanking() error {
	seen := map[string]struct{}{}
	for _, title := range c.Ranking.Hierarchy {
		key := strings.ToLower(title)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("ranking.hierarchy lists %q more than once", title)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
}
