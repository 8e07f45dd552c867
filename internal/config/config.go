// Package config provides seed command configuration management with support
// for TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/agno-seed/pkg/database"
	"github.com/JaimeStill/agno-seed/pkg/logging"
	"github.com/JaimeStill/agno-seed/pkg/tracing"
)

const (
	// BaseConfigFile is the default configuration file name.
	BaseConfigFile = "config.toml"

	// EnvSeedEnv specifies the environment name for configuration overlays.
	// With SEED_ENV=prod, config.prod.toml next to the base file is merged on top.
	EnvSeedEnv = "SEED_ENV"
)

var databaseEnv = &database.Env{
	URI:                         "MONGO_CONNECTION_STRING",
	Name:                        "MONGO_DATABASE_NAME",
	AppName:                     "MONGO_APP_NAME",
	ConnectTimeout:              "MONGO_CONNECT_TIMEOUT",
	ServerSelectionTimeout:      "MONGO_SERVER_SELECTION_TIMEOUT",
	OperationTimeout:            "MONGO_OPERATION_TIMEOUT",
	MaxPoolSize:                 "MONGO_MAX_POOL_SIZE",
	MinPoolSize:                 "MONGO_MIN_POOL_SIZE",
	MaxConnIdleTime:             "MONGO_MAX_CONN_IDLE_TIME",
	TLS:                         "USE_TLS",
	TLSAllowInvalidCertificates: "TLS_ALLOW_INVALID_CERTIFICATES",
}

var loggingEnv = &logging.Env{
	Level:  "LOG_LEVEL",
	Format: "LOG_FORMAT",
}

var tracingEnv = &tracing.Env{
	Enabled:  "TRACING_ENABLED",
	Exporter: "TRACING_EXPORTER",
}

// Config represents the root seed command configuration.
type Config struct {
	Database database.Config `toml:"database"`
	Logging  logging.Config  `toml:"logging"`
	Tracing  tracing.Config  `toml:"tracing"`
	Seed     SeedConfig      `toml:"seed"`
}

// Load reads the configuration file at path and applies any environment-specific
// overlay. A missing base file yields an empty configuration so the command can
// run from defaults and environment variables alone.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
	} else if err != nil {
		return nil, err
	}

	if overlay := overlayPath(path); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Tracing.Finalize(tracingEnv); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	if err := c.Seed.Finalize(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.Tracing.Merge(&overlay.Tracing)
	c.Seed.Merge(&overlay.Seed)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvSeedEnv)
	if env == "" {
		return ""
	}

	ext := filepath.Ext(base)
	path := fmt.Sprintf("%s.%s%s", strings.TrimSuffix(base, ext), env, ext)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
