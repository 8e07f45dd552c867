package main

import (
	"fmt"
	"io"

	"github.com/docker/go-units"

	"github.com/JaimeStill/agno-seed/internal/config"
	"github.com/JaimeStill/agno-seed/internal/dataset"
)

// loadDataset reads the external dataset file when one is configured and the
// named embedded dataset otherwise.
func loadDataset(cfg *config.SeedConfig) (*dataset.Dataset, error) {
	if cfg.File != "" {
		d, err := dataset.LoadFile(cfg.File, cfg.MaxFileSizeBytes())
		if err != nil {
			return nil, fmt.Errorf("load dataset file %s (limit %s): %w",
				cfg.File, units.HumanSize(float64(cfg.MaxFileSizeBytes())), err)
		}
		return d, nil
	}

	d, err := dataset.Embedded(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", cfg.Dataset, err)
	}
	return d, nil
}

func listDatasets(w io.Writer) error {
	infos, err := dataset.List()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Available datasets:")
	for _, info := range infos {
		marker := ""
		if info.Name == dataset.Default {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  - %s%s: %s\n", info.Name, marker, info.Description)
	}
	return nil
}
