package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default values for configuration fields.
const (
	DefaultDatabasePath     = "./appkit.db"
	DefaultMigrationsDir    = "./migrations"
	DefaultLogDir           = "./logs"
	DefaultLogLevel         = "info"
	DefaultLogRotation      = "daily"
	DefaultLogRetentionDays = 7
	DefaultFormat           = "text"
)

// Config holds the application configuration loaded from file, environment, and flags.
type Config struct {
	DatabasePath     string
	MigrationsDir    string
	LogDir           string
	LogLevel         string
	LogRotation      string
	LogRetentionDays int
	Format           string
}

// yamlConfig is the raw YAML file representation.
type yamlConfig struct {
	DatabasePath     string `yaml:"database_path"`
	MigrationsDir    string `yaml:"migrations_dir"`
	LogDir           string `yaml:"log_dir"`
	LogLevel         string `yaml:"log_level"`
	LogRotation      string `yaml:"log_rotation"`
	LogRetentionDays int    `yaml:"log_retention_days"`
	Format           string `yaml:"format"`
}

// New returns a Config populated with default values.
func New() *Config {
	return &Config{
		DatabasePath:     DefaultDatabasePath,
		MigrationsDir:    DefaultMigrationsDir,
		LogDir:           DefaultLogDir,
		LogLevel:         DefaultLogLevel,
		LogRotation:      DefaultLogRotation,
		LogRetentionDays: DefaultLogRetentionDays,
		Format:           DefaultFormat,
	}
}

// Load reads a YAML configuration file and returns a Config.
// If allowMissing is true and the file does not exist, defaults are returned.
func Load(path string, allowMissing bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return New(), nil
		}

		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return fromYAML(&raw), nil
}

// fromYAML converts the raw YAML representation to a Config with defaults applied.
func fromYAML(raw *yamlConfig) *Config {
	cfg := New()

	if raw.DatabasePath != "" {
		cfg.DatabasePath = raw.DatabasePath
	}

	if raw.MigrationsDir != "" {
		cfg.MigrationsDir = raw.MigrationsDir
	}

	if raw.LogDir != "" {
		cfg.LogDir = raw.LogDir
	}

	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}

	if raw.LogRotation != "" {
		cfg.LogRotation = raw.LogRotation
	}

	if raw.LogRetentionDays != 0 {
		cfg.LogRetentionDays = raw.LogRetentionDays
	}

	if raw.Format != "" {
		cfg.Format = raw.Format
	}

	return cfg
}

// MergeEnv overrides config fields from APPKIT_* environment variables.
func MergeEnv(cfg *Config) {
	if v := os.Getenv("APPKIT_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}

	if v := os.Getenv("APPKIT_MIGRATIONS_DIR"); v != "" {
		cfg.MigrationsDir = v
	}

	if v := os.Getenv("APPKIT_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}

	if v := os.Getenv("APPKIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("APPKIT_LOG_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.LogRetentionDays = days
		}
	}
}
