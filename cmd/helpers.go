package cmd

import (
	"fmt"
	"os"

	"github.com/codeatlas-dev/codeatlas/internal/config"
	"github.com/codeatlas-dev/codeatlas/internal/dataset"
)

// loadDataset reads and filters an analysis dataset for the one-shot
// commands.
func loadDataset(cfg *config.Config, path string) (*dataset.Dataset, error) {
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	ds.Normalize(cfg.Dataset.Include, cfg.Dataset.Exclude)

	if verbose {
		fmt.Fprintf(os.Stderr, "Dataset: %d files, %d directories (%s)\n",
			len(ds.Files), len(ds.Dirs), path)
	}
	return ds, nil
}
