package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeOutput()
	c.normalizeScrub()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MasterFile, err = expandPath(c.Paths.MasterFile); err != nil {
		return fmt.Errorf("paths.master_file: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	c.Matching.IDColumn = strings.TrimSpace(c.Matching.IDColumn)
	if c.Matching.IDColumn == "" {
		c.Matching.IDColumn = defaultIDColumn
	}
	if len(c.Matching.ChannelColumns) == 0 {
		c.Matching.ChannelColumns = defaultChannelColumns()
	} else {
		columns := make([]string, 0, len(c.Matching.ChannelColumns))
		seen := make(map[string]struct{}, len(c.Matching.ChannelColumns))
		for _, column := range c.Matching.ChannelColumns {
			trimmed := strings.TrimSpace(column)
			if trimmed == "" {
				continue
			}
			if _, exists := seen[trimmed]; exists {
				continue
			}
			seen[trimmed] = struct{}{}
			columns = append(columns, trimmed)
		}
		if len(columns) == 0 {
			columns = defaultChannelColumns()
		}
		c.Matching.ChannelColumns = columns
	}
	if c.Matching.MinPartialAliasLength <= 0 {
		c.Matching.MinPartialAliasLength = defaultMinPartialAliasLength
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Prefix = strings.TrimSpace(c.Output.Prefix)
	if c.Output.Prefix == "" {
		c.Output.Prefix = defaultOutputPrefix
	}
}

func (c *Config) normalizeScrub() {
	if c.Scrub.Workers <= 0 {
		c.Scrub.Workers = defaultScrubWorkers
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
}
