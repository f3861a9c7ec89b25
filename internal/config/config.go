// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"hostforge/internal/errors"
	"hostforge/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Naming contains identifier scheme settings
	Naming NamingConfig `json:"naming"`

	// Storage contains persistence settings
	Storage StorageConfig `json:"storage"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// NamingConfig contains identifier scheme settings
type NamingConfig struct {
	// Prefix is the literal leading segment of every identifier
	Prefix string `json:"prefix" env:"HOSTFORGE_PREFIX"`

	// MaxBatch caps the count of one generate call, 0 for no cap
	MaxBatch int `json:"max_batch" env:"HOSTFORGE_MAX_BATCH"`
}

// StorageConfig contains persistence settings
type StorageConfig struct {
	// Backend is one of file, sqlite, memory
	Backend string `json:"backend" env:"HOSTFORGE_STORAGE_BACKEND"`

	// Path is the state file (file backend) or database file (sqlite backend)
	Path string `json:"path" env:"HOSTFORGE_STORAGE_PATH"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (table, json, yaml)
	DefaultFormat string `json:"default_format" env:"HOSTFORGE_OUTPUT_FORMAT"`

	// NoColor disables ANSI colours in table output
	NoColor bool `json:"no_color" env:"HOSTFORGE_NO_COLOR"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// ListenAddress is the host:port the API binds to
	ListenAddress string `json:"listen_address" env:"HOSTFORGE_SERVER_ADDR"`

	// Debug enables gin debug mode
	Debug bool `json:"debug"`
}

// Dir returns the per-user state directory.
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hostforge"
	}
	return filepath.Join(homeDir, ".hostforge")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Naming: NamingConfig{
			Prefix:   "CNL",
			MaxBatch: 500,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    filepath.Join(Dir(), "state.json"),
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Server: ServerConfig{
			ListenAddress: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, then applies environment overrides
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Config("parse "+path, err)
		}
	case !os.IsNotExist(err):
		return nil, errors.Config("read "+path, err)
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overlays HOSTFORGE_* environment variables onto c.
func ApplyEnv(c *Config) error {
	if err := env.Parse(c); err != nil {
		return errors.Config("parse env", err)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
