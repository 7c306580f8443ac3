// Package config handles configuration loading and validation for taskjson.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend names a task storage implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// IsValid reports whether b is a known backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendJSON, BackendSQLite:
		return true
	}
	return false
}

// Config holds the application configuration.
type Config struct {
	TaskFile string         `yaml:"task_file"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	List     ListConfig     `yaml:"list"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the task collection is persisted.
type StorageConfig struct {
	Backend Backend `yaml:"backend"`
}

// DatabaseConfig tunes the sqlite backend.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// ImportConfig lists the sources merged by "taskjson import" when no
// arguments are given. Entries are doublestar globs; relative patterns are
// resolved against the data directory.
type ImportConfig struct {
	Sources []string `yaml:"sources"`
}

// ListConfig controls "taskjson ls" output.
type ListConfig struct {
	ShowRemoved bool `yaml:"show_removed"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.TaskFile == "" && c.DataDir != "" {
		c.TaskFile = filepath.Join(c.DataDir, "task.json")
	}
}

// ImportPatterns returns the configured import sources with relative
// patterns resolved against the data directory.
func (c *Config) ImportPatterns() []string {
	patterns := make([]string, 0, len(c.Import.Sources))
	for _, src := range c.Import.Sources {
		if !filepath.IsAbs(src) {
			src = filepath.Join(c.DataDir, src)
		}
		patterns = append(patterns, src)
	}
	return patterns
}
