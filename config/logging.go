package config

import (
	"fmt"

	"github.com/kilianp07/dispatchsim/core/factory"
)

// LoggingConfig defines settings for dispatch record storage and rotation.
type LoggingConfig struct {
	// Backend selects the record store type: "jsonl", "sqlite" or "none".
	Backend string `json:"backend"`
	// Path is the file location of the record store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Backend != "none" && c.Path == "" {
		c.Path = "dispatch.log"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	switch c.Backend {
	case "jsonl", "sqlite", "none":
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Backend != "none" && c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// ModuleConfig translates the settings into a record store factory config.
// Rotation knobs upgrade the jsonl backend to its rotating variant.
func (c LoggingConfig) ModuleConfig() factory.ModuleConfig {
	if c.Backend == "none" {
		return factory.ModuleConfig{Type: "none"}
	}
	conf := map[string]any{"path": c.Path}
	typ := c.Backend
	if c.Backend == "jsonl" && c.MaxSizeMB > 0 {
		typ = "jsonl_rotating"
		conf["max_size_mb"] = c.MaxSizeMB
		conf["max_backups"] = c.MaxBackups
		conf["max_age_days"] = c.MaxAgeDays
	}
	return factory.ModuleConfig{Type: typ, Conf: conf}
}
