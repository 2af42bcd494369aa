package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeColumns()
	c.normalizeRanking()
	c.normalizeLogging()
	if c.History.Keep < 0 {
		c.History.Keep = 0
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("UCCLEAN_INPUT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Input = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("UCCLEAN_OUTPUT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Output = strings.TrimSpace(value)
	}

	var err error
	if c.Paths.Input, err = expandPath(strings.TrimSpace(c.Paths.Input)); err != nil {
		return fmt.Errorf("paths.input: %w", err)
	}
	if c.Paths.Output, err = expandPath(strings.TrimSpace(c.Paths.Output)); err != nil {
		return fmt.Errorf("paths.output: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

// Column names are matched verbatim against the CSV header, so only an empty
// value is replaced.
func (c *Config) normalizeColumns() {
	if strings.TrimSpace(c.Columns.FilingID) == "" {
		c.Columns.FilingID = defaultFilingIDColumn
	}
	if strings.TrimSpace(c.Columns.Designation) == "" {
		c.Columns.Designation = defaultDesignationCol
	}
	if strings.TrimSpace(c.Columns.FilingDate) == "" {
		c.Columns.FilingDate = defaultFilingDateCol
	}
}

func (c *Config) normalizeRanking() {
	c.Ranking.Hierarchy = trimNonEmpty(c.Ranking.Hierarchy)
	c.Ranking.OverrideKeywords = trimNonEmpty(c.Ranking.OverrideKeywords)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
