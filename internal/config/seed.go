package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

const (
	// EnvSeedDataset overrides the embedded dataset name.
	EnvSeedDataset = "SEED_DATASET"

	// EnvSeedFile overrides the external dataset file path.
	EnvSeedFile = "SEED_FILE"

	// EnvSeedMode overrides the write mode (strict or upsert).
	EnvSeedMode = "SEED_MODE"

	// EnvSeedConcurrent overrides whether stages run concurrently.
	EnvSeedConcurrent = "SEED_CONCURRENT"

	// EnvSeedMaxFileSize overrides the external dataset size limit (e.g. "4MB").
	EnvSeedMaxFileSize = "SEED_MAX_FILE_SIZE"
)

// SeedConfig selects the dataset and how it is written.
type SeedConfig struct {
	// Dataset names an embedded dataset. Ignored when File is set.
	Dataset string `toml:"dataset"`

	// File is a path to a JSON or YAML dataset file.
	File string `toml:"file"`

	// Mode is "strict" (insert, duplicates fail) or "upsert" (replace by id).
	Mode string `toml:"mode"`

	Concurrent     bool   `toml:"concurrent"`
	MaxFileSize    string `toml:"max_file_size"`
	maxFileSizeVal int64
}

// MaxFileSizeBytes returns the parsed dataset file size limit.
func (c *SeedConfig) MaxFileSizeBytes() int64 {
	return c.maxFileSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the seed configuration.
func (c *SeedConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SeedConfig) Merge(overlay *SeedConfig) {
	if overlay.Dataset != "" {
		c.Dataset = overlay.Dataset
	}
	if overlay.File != "" {
		c.File = overlay.File
	}
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.Concurrent {
		c.Concurrent = true
	}
	if size, err := units.FromHumanSize(overlay.MaxFileSize); err == nil {
		c.MaxFileSize = overlay.MaxFileSize
		c.maxFileSizeVal = size
	}
}

func (c *SeedConfig) loadDefaults() {
	if c.Dataset == "" {
		c.Dataset = "agno"
	}
	if c.Mode == "" {
		c.Mode = "strict"
	}
	if c.MaxFileSize == "" {
		c.MaxFileSize = "4MB"
	}
}

func (c *SeedConfig) loadEnv() {
	if v := os.Getenv(EnvSeedDataset); v != "" {
		c.Dataset = v
	}
	if v := os.Getenv(EnvSeedFile); v != "" {
		c.File = v
	}
	if v := os.Getenv(EnvSeedMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvSeedConcurrent); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Concurrent = b
		}
	}
	if v := os.Getenv(EnvSeedMaxFileSize); v != "" {
		c.MaxFileSize = v
	}
}

func (c *SeedConfig) validate() error {
	if c.Mode != "strict" && c.Mode != "upsert" {
		return fmt.Errorf("invalid mode %q (must be strict or upsert)", c.Mode)
	}

	size, err := units.FromHumanSize(c.MaxFileSize)
	if err != nil {
		return fmt.Errorf("invalid max_file_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_file_size must be positive")
	}
	c.maxFileSizeVal = size

	return nil
}
