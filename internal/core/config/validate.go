package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is valid.
// All field problems are reported together.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, required),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("task_file", c.TaskFile, required),
		criterio.Run("storage.backend", c.Storage.Backend, validBackend),
		c.validateDatabase(),
		c.validateImport(),
	)
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder

	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", fmt.Errorf("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("cannot be negative"))
	} else if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("cannot exceed max_open_conns (%d)", c.Database.MaxOpenConns))
	}
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", fmt.Errorf("cannot be negative"))
	}

	return errs.ToError()
}

func (c *Config) validateImport() error {
	var errs criterio.FieldErrorsBuilder

	for i, src := range c.Import.Sources {
		field := fmt.Sprintf("import.sources[%d]", i)
		if src == "" {
			errs = errs.Append(field, fmt.Errorf("pattern cannot be empty"))
			continue
		}
		if !doublestar.ValidatePattern(src) {
			errs = errs.Append(field, fmt.Errorf("invalid glob pattern %q", src))
		}
	}

	return errs.ToError()
}

func required(s string) error {
	if s == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func validBackend(b Backend) error {
	if !b.IsValid() {
		return fmt.Errorf("invalid backend %q: must be one of json, sqlite", b)
	}
	return nil
}

// isDirectoryOrNotExist accepts a path that is a directory or does not exist yet.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
