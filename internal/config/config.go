package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the ollie CLI.
type Config struct {
	// ServerURL overrides the server from the settings file. Empty means
	// defer to settings.
	ServerURL string

	// RequestTimeout bounds buffered API calls (list, delete, show).
	// Zero means per-operation defaults.
	RequestTimeout time.Duration

	// PullTimeout bounds an entire streaming pull.
	PullTimeout time.Duration
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		PullTimeout: time.Hour,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	ServerURL      string `yaml:"server_url"`
	RequestTimeout string `yaml:"request_timeout"`
	PullTimeout    string `yaml:"pull_timeout"`
}

// LoadFromFile loads configuration from a YAML file. A missing file
// yields Default().
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.ServerURL != "" {
		cfg.ServerURL = yc.ServerURL
	}
	if yc.RequestTimeout != "" {
		d, err := time.ParseDuration(yc.RequestTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if yc.PullTimeout != "" {
		d, err := time.ParseDuration(yc.PullTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse pull_timeout: %w", err)
		}
		cfg.PullTimeout = d
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the OLLIE_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("OLLIE_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("OLLIE_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse OLLIE_REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	if v := os.Getenv("OLLIE_PULL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse OLLIE_PULL_TIMEOUT: %w", err)
		}
		c.PullTimeout = d
	}
	return nil
}
