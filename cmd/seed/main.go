// Package main provides the seed command. It populates the orchestrator's
// MongoDB database with the agent, tool, and team configurations it loads at
// startup, declares their indexes, and provisions the runtime collections.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JaimeStill/agno-seed/internal/config"
	"github.com/JaimeStill/agno-seed/internal/seeder"
	"github.com/JaimeStill/agno-seed/pkg/logging"
	"github.com/JaimeStill/agno-seed/pkg/tracing"
)

const shutdownTimeout = 5 * time.Second

type flags struct {
	config     string
	uri        string
	database   string
	dataset    string
	file       string
	mode       string
	concurrent bool
	dryRun     bool
	list       bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", config.BaseConfigFile, "Configuration file")
	fs.StringVar(&f.uri, "uri", "", "MongoDB connection string (overrides config)")
	fs.StringVar(&f.database, "database", "", "Database name (overrides config)")
	fs.StringVar(&f.dataset, "dataset", "", "Embedded dataset name")
	fs.StringVar(&f.file, "file", "", "External dataset file, JSON or YAML (overrides -dataset)")
	fs.StringVar(&f.mode, "mode", "", "Write mode: strict or upsert")
	fs.BoolVar(&f.concurrent, "concurrent", false, "Run stages concurrently")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Seed an in-memory store instead of the database")
	fs.BoolVar(&f.list, "list", false, "List embedded datasets")

	if err := fs.Parse(args); err != nil {
		return f, err
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if f.list {
		if err := listDatasets(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("finalize configuration: %w", err)
	}
	f.apply(cfg)

	logger := logging.New(&cfg.Logging)

	shutdown, err := tracing.Setup(&cfg.Tracing, os.Stderr)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	d, err := loadDataset(&cfg.Seed)
	if err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %w", seeder.ErrInvalidDataset, err)
	}

	st, closeStore, err := openStore(ctx, cfg, f.dryRun, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	s, err := seeder.New(st, logger, seeder.Options{
		Mode:       seeder.Mode(cfg.Seed.Mode),
		Concurrent: cfg.Seed.Concurrent,
	})
	if err != nil {
		return err
	}

	report, err := s.Run(ctx, d)
	if err != nil {
		return err
	}

	printReport(os.Stdout, report, d.Collections)

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("stages failed: %v: %w", failed, report.Err())
	}
	return nil
}

// apply overrides configuration with explicitly set flags.
func (f flags) apply(cfg *config.Config) {
	if f.uri != "" {
		cfg.Database.URI = f.uri
	}
	if f.database != "" {
		cfg.Database.Name = f.database
	}
	if f.dataset != "" {
		cfg.Seed.Dataset = f.dataset
		cfg.Seed.File = ""
	}
	if f.file != "" {
		cfg.Seed.File = f.file
	}
	if f.mode != "" {
		cfg.Seed.Mode = f.mode
	}
	if f.set["concurrent"] {
		cfg.Seed.Concurrent = f.concurrent
	}
}
