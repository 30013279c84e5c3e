// Package config loads tada's settings from built-in defaults, an optional
// YAML file and TADA_ environment variables, in that order of precedence.
package config

// Config holds all configuration for tada.
type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
	UI      UIConfig      `koanf:"ui"`
}

// StorageConfig selects where the user and todo slots are kept.
type StorageConfig struct {
	Backend    string `koanf:"backend"`
	Dir        string `koanf:"dir"`
	SQLitePath string `koanf:"sqlite_path"`
}

// LogConfig holds structured logging settings. An empty File means the
// caller picks the destination.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

type UIConfig struct {
	Theme string `koanf:"theme"`
}

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)
