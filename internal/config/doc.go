// Package config loads, normalizes, and validates scrubber configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and engine need: the master registry location, output/log
// directories, matching tier flags, and ledger settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical channel column lists, and clear validation
// errors.
package config
