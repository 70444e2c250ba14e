package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if c.Scrub.Workers <= 0 {
		return errors.New("scrub.workers must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.MasterFile == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/scrubber/config.toml"
		}
		return fmt.Errorf("paths.master_file is required. Edit %s (create with 'scrubber config init')", defaultPath)
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.IDColumn == "" {
		return errors.New("matching.id_column must be set")
	}
	if len(c.Matching.ChannelColumns) == 0 {
		return errors.New("matching.channel_columns must list at least one column")
	}
	if c.Matching.MinPartialAliasLength <= 0 {
		return errors.New("matching.min_partial_alias_length must be positive")
	}
	return nil
}
