package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Storage.validate(),
		c.Log.validate(),
		c.UI.validate(),
	)
}

func (s *StorageConfig) validate() error {
	var errs []error

	switch s.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be one of: file, sqlite, memory; got %q", s.Backend))
	}
	if s.Backend == BackendFile && s.Dir == "" {
		errs = append(errs, fmt.Errorf("storage.dir %w", errEmpty))
	}
	if s.Backend == BackendSQLite && s.SQLitePath == "" {
		errs = append(errs, fmt.Errorf("storage.sqlite_path %w", errEmpty))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: text, json, logfmt; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (u *UIConfig) validate() error {
	switch u.Theme {
	case "classic", "neon", "mono":
		return nil
	default:
		return fmt.Errorf("ui.theme must be one of: classic, neon, mono; got %q", u.Theme)
	}
}
