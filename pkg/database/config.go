package database

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains MongoDB connection configuration.
type Config struct {
	URI                         string `toml:"uri"`
	Name                        string `toml:"name"`
	AppName                     string `toml:"app_name"`
	ConnectTimeout              string `toml:"connect_timeout"`
	ServerSelectionTimeout      string `toml:"server_selection_timeout"`
	OperationTimeout            string `toml:"operation_timeout"`
	MaxPoolSize                 uint64 `toml:"max_pool_size"`
	MinPoolSize                 uint64 `toml:"min_pool_size"`
	MaxConnIdleTime             string `toml:"max_conn_idle_time"`
	TLS                         bool   `toml:"tls"`
	TLSAllowInvalidCertificates bool   `toml:"tls_allow_invalid_certificates"`
}

// Env maps environment variable names for database configuration.
type Env struct {
	URI                         string
	Name                        string
	AppName                     string
	ConnectTimeout              string
	ServerSelectionTimeout      string
	OperationTimeout            string
	MaxPoolSize                 string
	MinPoolSize                 string
	MaxConnIdleTime             string
	TLS                         string
	TLSAllowInvalidCertificates string
}

// ConnectTimeoutDuration parses and returns the connect timeout as a time.Duration.
func (c *Config) ConnectTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnectTimeout)
	return d
}

// ServerSelectionTimeoutDuration parses and returns the server selection timeout as a time.Duration.
func (c *Config) ServerSelectionTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ServerSelectionTimeout)
	return d
}

// OperationTimeoutDuration parses and returns the per-operation timeout as a time.Duration.
func (c *Config) OperationTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.OperationTimeout)
	return d
}

// MaxConnIdleTimeDuration parses and returns the idle connection lifetime as a time.Duration.
func (c *Config) MaxConnIdleTimeDuration() time.Duration {
	d, _ := time.ParseDuration(c.MaxConnIdleTime)
	return d
}

// UseTLS reports whether the connection must be encrypted.
// Atlas clusters (mongodb.net hosts) always require TLS.
func (c *Config) UseTLS() bool {
	return c.TLS || strings.Contains(c.URI, "mongodb.net")
}

// Redacted returns the URI with any password removed, for logging.
func (c *Config) Redacted() string {
	u, err := url.Parse(c.URI)
	if err != nil {
		return "<invalid uri>"
	}
	return u.Redacted()
}

// Finalize applies defaults, loads environment overrides, and validates the database configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.URI != "" {
		c.URI = overlay.URI
	}
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.AppName != "" {
		c.AppName = overlay.AppName
	}
	if overlay.ConnectTimeout != "" {
		c.ConnectTimeout = overlay.ConnectTimeout
	}
	if overlay.ServerSelectionTimeout != "" {
		c.ServerSelectionTimeout = overlay.ServerSelectionTimeout
	}
	if overlay.OperationTimeout != "" {
		c.OperationTimeout = overlay.OperationTimeout
	}
	if overlay.MaxPoolSize != 0 {
		c.MaxPoolSize = overlay.MaxPoolSize
	}
	if overlay.MinPoolSize != 0 {
		c.MinPoolSize = overlay.MinPoolSize
	}
	if overlay.MaxConnIdleTime != "" {
		c.MaxConnIdleTime = overlay.MaxConnIdleTime
	}
	if overlay.TLS {
		c.TLS = true
	}
	if overlay.TLSAllowInvalidCertificates {
		c.TLSAllowInvalidCertificates = true
	}
}

func (c *Config) loadDefaults() {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Name == "" {
		c.Name = "agno"
	}
	if c.AppName == "" {
		c.AppName = "agno-seed"
	}
	if c.ConnectTimeout == "" {
		c.ConnectTimeout = "30s"
	}
	if c.ServerSelectionTimeout == "" {
		c.ServerSelectionTimeout = "30s"
	}
	if c.OperationTimeout == "" {
		c.OperationTimeout = "30s"
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 50
	}
	if c.MinPoolSize == 0 {
		c.MinPoolSize = 1
	}
	if c.MaxConnIdleTime == "" {
		c.MaxConnIdleTime = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.URI != "" {
		if v := os.Getenv(env.URI); v != "" {
			c.URI = v
		}
	}
	if env.Name != "" {
		if v := os.Getenv(env.Name); v != "" {
			c.Name = v
		}
	}
	if env.AppName != "" {
		if v := os.Getenv(env.AppName); v != "" {
			c.AppName = v
		}
	}
	if env.ConnectTimeout != "" {
		if v := os.Getenv(env.ConnectTimeout); v != "" {
			c.ConnectTimeout = v
		}
	}
	if env.ServerSelectionTimeout != "" {
		if v := os.Getenv(env.ServerSelectionTimeout); v != "" {
			c.ServerSelectionTimeout = v
		}
	}
	if env.OperationTimeout != "" {
		if v := os.Getenv(env.OperationTimeout); v != "" {
			c.OperationTimeout = v
		}
	}
	if env.MaxPoolSize != "" {
		if v := os.Getenv(env.MaxPoolSize); v != "" {
			if n, err := strconv.ParseUint(v, 10, 64); err == nil {
				c.MaxPoolSize = n
			}
		}
	}
	if env.MinPoolSize != "" {
		if v := os.Getenv(env.MinPoolSize); v != "" {
			if n, err := strconv.ParseUint(v, 10, 64); err == nil {
				c.MinPoolSize = n
			}
		}
	}
	if env.MaxConnIdleTime != "" {
		if v := os.Getenv(env.MaxConnIdleTime); v != "" {
			c.MaxConnIdleTime = v
		}
	}
	if env.TLS != "" {
		if v := os.Getenv(env.TLS); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.TLS = b
			}
		}
	}
	if env.TLSAllowInvalidCertificates != "" {
		if v := os.Getenv(env.TLSAllowInvalidCertificates); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.TLSAllowInvalidCertificates = b
			}
		}
	}
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.URI, "mongodb://") && !strings.HasPrefix(c.URI, "mongodb+srv://") {
		return fmt.Errorf("uri must use the mongodb:// or mongodb+srv:// scheme")
	}
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if _, err := time.ParseDuration(c.ConnectTimeout); err != nil {
		return fmt.Errorf("invalid connect_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ServerSelectionTimeout); err != nil {
		return fmt.Errorf("invalid server_selection_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.OperationTimeout); err != nil {
		return fmt.Errorf("invalid operation_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.MaxConnIdleTime); err != nil {
		return fmt.Errorf("invalid max_conn_idle_time: %w", err)
	}
	if c.MinPoolSize > c.MaxPoolSize {
		return fmt.Errorf("min_pool_size (%d) exceeds max_pool_size (%d)", c.MinPoolSize, c.MaxPoolSize)
	}
	return nil
}
