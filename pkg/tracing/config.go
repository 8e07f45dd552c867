package tracing

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter names a span exporter.
type Exporter string

// Supported exporters.
const (
	ExporterNoop   Exporter = "noop"
	ExporterStdout Exporter = "stdout"
)

// Env maps environment variable names for tracing configuration.
type Env struct {
	Enabled  string
	Exporter string
}

// Config holds tracing configuration settings.
type Config struct {
	Enabled  bool     `toml:"enabled"`
	Exporter Exporter `toml:"exporter"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Exporter != "" {
		c.Exporter = overlay.Exporter
	}
}

func (c *Config) loadDefaults() {
	if c.Exporter == "" {
		c.Exporter = ExporterStdout
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Enabled = b
			}
		}
	}
	if env.Exporter != "" {
		if v := os.Getenv(env.Exporter); v != "" {
			c.Exporter = Exporter(v)
		}
	}
}

func (c *Config) validate() error {
	switch c.Exporter {
	case ExporterNoop, ExporterStdout:
		return nil
	default:
		return fmt.Errorf("invalid exporter: %s (must be noop or stdout)", c.Exporter)
	}
}
