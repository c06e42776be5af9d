// Package config handles resolving configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config is the resolved service configuration.
type Config struct {
	// Address is the host:port the API server listens on.
	Address string `yaml:"address"`
	// Database configures the backing document store.
	Database DatabaseConfig `yaml:"database"`
	// Logging configures the slog handler.
	Logging LoggingConfig `yaml:"logging"`
	// DevMode enables debug behavior: request logging and verbose errors.
	DevMode bool `yaml:"dev_mode"`
}

// DatabaseConfig holds document store configuration.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with all default values populated. The
// defaults are valid on their own; a config file only overrides them.
func Default() *Config {
	return &Config{
		Address: "localhost:3000",
		Database: DatabaseConfig{
			Path: filepath.Join(xdg.DataHome, "ccgoodies", "db.sqlite"),
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file from path, merges it over the
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Address == "" {
		return errors.New("address must not be empty")
	}
	if c.Database.Path == "" {
		return errors.New("database.path must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel resolves the configured logging level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
}
