package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "TADA_"

	// EnvConfigPath names the config file when --config is not given.
	EnvConfigPath = envPrefix + "CONFIG"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	path      string
	home      string
	configDir string
}

// WithFile loads the given YAML file, which must exist.
func WithFile(path string) Option {
	return func(o *loadOptions) { o.path = path }
}

// WithHomeDir overrides the directory "~" expands to.
func WithHomeDir(dir string) Option {
	return func(o *loadOptions) { o.home = dir }
}

// WithConfigDir overrides the user config directory searched for
// tada/config.yaml when no file is named.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) { o.configDir = dir }
}

// Load reads configuration using a 3-layer hierarchy (highest precedence last):
//
//  1. Built-in defaults
//  2. YAML file: WithFile, else $TADA_CONFIG, else <config dir>/tada/config.yaml if present
//  3. Environment variables (TADA_ prefix)
//
// Env names are matched against the known keys, so TADA_STORAGE_SQLITE_PATH
// maps to storage.sqlite_path rather than storage.sqlite.path.
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.home == "" {
		if home, err := os.UserHomeDir(); err == nil {
			o.home = home
		}
	}

	k := koanf.New(".")

	// Layer 1: defaults.
	for key, value := range defaults(o.home) {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	// Layer 2: optional file.
	path, required := o.filePath()
	if path != "" {
		if _, err := os.Stat(path); err == nil || required {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config %s: %w", path, err)
			}
		}
	}

	// Layer 3: environment.
	envLookup := buildEnvLookup(k.Keys())
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			if koanfKey, ok := envLookup[key]; ok {
				return koanfKey, value
			}
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.resolvePaths(o.home)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// filePath returns the config file to read and whether it must exist.
func (o *loadOptions) filePath() (string, bool) {
	if o.path != "" {
		return o.path, true
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, true
	}
	dir := o.configDir
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return "", false
		}
		dir = d
	}
	return filepath.Join(dir, "tada", "config.yaml"), false
}

func (c *Config) resolvePaths(home string) {
	c.Storage.Dir = expandHome(home, c.Storage.Dir)
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.Storage.Dir, defaultSQLiteName)
	} else {
		c.Storage.SQLitePath = expandHome(home, c.Storage.SQLitePath)
	}
	if c.Log.File != "" {
		c.Log.File = expandHome(home, c.Log.File)
	}
}

// DefaultLogFile is where the TUI logs when log.file is unset.
func (c *Config) DefaultLogFile() string {
	return filepath.Join(c.Storage.Dir, defaultLogName)
}

// buildEnvLookup maps env-style keys ("storage_sqlite_path") to koanf keys
// ("storage.sqlite_path").
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return lookup
}

// Keys lists every known config key, sorted.
func Keys() []string {
	d := defaults("")
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func expandHome(home, p string) string {
	if p == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return joinHome(home, rest)
	}
	return p
}

func joinHome(home, rel string) string {
	if home == "" {
		return rel
	}
	return filepath.Join(home, rel)
}

var errEmpty = errors.New("must not be empty")
