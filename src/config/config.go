package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"benchmark-observer/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns a Config holding only defaults.
func Default() *Config {
	c := &Config{MConfig: &models.MConfig{}}
	c.SetDefaults()
	return c
}

// -----------------------------------------------------------------------------

// NewConfig creates a Config from a YAML file. A missing file is not an error:
// the server runs on defaults.
func NewConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config.MConfig); err != nil {
				return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// keep defaults
		default:
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// SetDefaults fills the values the server needs when no config file is given.
// write_logs defaults to true; a YAML file that sets it to false overrides it.
func (c *Config) SetDefaults() {
	c.Name = "benchmark-observer"
	c.Host = "0.0.0.0"
	c.Port = 8000
	c.LogLevel = "INFO"
	c.WriteLogs = true
	c.LogDir = "."
	c.SummaryFile = "testruns.txt"
	c.RecentCapacity = 500
	c.MaxBodyBytes = 1 << 20

	c.Thresholds = models.MThresholdsConfig{
		Faster:           1.10,
		Slower:           0.95,
		RealSlowNew:      0.5,
		RealSlowOriginal: 0.7,
	}

	c.Storage = models.MStorageConfig{
		DBType: "sqlite",
		DBPath: "benchmark_observer.db",
	}

	c.Admin = models.MAdminConfig{
		Enabled:  false,
		Host:     "127.0.0.1",
		Port:     8001,
		GrpcPort: 8002,
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Server
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1 and 65535)", c.Port)
	}

	// Log sink
	if c.LogDir == "" {
		return fmt.Errorf("log directory cannot be empty")
	}
	if c.SummaryFile == "" {
		return fmt.Errorf("summary file cannot be empty")
	}
	if c.RecentCapacity < 0 {
		return fmt.Errorf("recent capacity cannot be negative")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}

	// Classifier
	if c.Thresholds.Slower > c.Thresholds.Faster {
		return fmt.Errorf("slower threshold %.2f is above faster threshold %.2f", c.Thresholds.Slower, c.Thresholds.Faster)
	}

	// Storage
	switch strings.ToLower(c.Storage.DBType) {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("database connection string cannot be empty for postgres")
		}
	case "none", "":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}

	// Admin
	if c.Admin.Enabled {
		if c.Admin.Port <= 0 || c.Admin.Port > 65535 {
			return fmt.Errorf("invalid admin port number: %d", c.Admin.Port)
		}
		if c.Admin.Port == c.Port && c.Admin.Host == c.Host {
			return fmt.Errorf("admin listener cannot share the server address")
		}
		if c.Admin.GrpcPort < 0 || c.Admin.GrpcPort > 65535 {
			return fmt.Errorf("invalid grpc port number: %d", c.Admin.GrpcPort)
		}
		if c.Admin.GrpcPort != 0 && (c.Admin.GrpcPort == c.Admin.Port || c.Admin.GrpcPort == c.Port) {
			return fmt.Errorf("grpc port %d is already taken", c.Admin.GrpcPort)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
