// Package config loads taskdash configuration from the XDG config file and
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config holds the runtime settings for the dashboard.
type Config struct {
	Endpoint         string `toml:"endpoint"`
	Token            string `toml:"token"`
	PageSize         int    `toml:"page_size"`
	SearchDebounceMS int    `toml:"search_debounce_ms"`
	PageDebounceMS   int    `toml:"page_debounce_ms"`
	RequestTimeoutMS int    `toml:"request_timeout_ms"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Endpoint:         "http://localhost:8787/graphql",
		PageSize:         10,
		SearchDebounceMS: 500,
		PageDebounceMS:   100,
		RequestTimeoutMS: 30000,
	}
}

// SearchDebounce is the idle delay before a search keystroke triggers a fetch.
func (c Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

// PageDebounce is the coalescing delay for rapid page-change presses.
func (c Config) PageDebounce() time.Duration {
	return time.Duration(c.PageDebounceMS) * time.Millisecond
}

// RequestTimeout is the per-request HTTP timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Dir returns the taskdash config directory.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskdash")
}

// Load returns the merged configuration: defaults, then the config file if
// present, then environment overrides.
func Load() (Config, error) {
	return loadFrom(filepath.Join(Dir(), FileName))
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file is fine; defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("TASKDASH_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TASKDASH_TOKEN"); v != "" {
		cfg.Token = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate clamps tunables into sane ranges and rejects unusable settings.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.PageSize < 1 {
		c.PageSize = 1
	}
	if c.PageSize > 100 {
		c.PageSize = 100
	}
	if c.SearchDebounceMS < 0 {
		c.SearchDebounceMS = 0
	}
	if c.PageDebounceMS < 0 {
		c.PageDebounceMS = 0
	}
	if c.RequestTimeoutMS <= 0 {
		c.RequestTimeoutMS = Default().RequestTimeoutMS
	}
	return nil
}
