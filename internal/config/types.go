package config

import (
	"github.com/codeatlas-dev/codeatlas/internal/layout"
	"github.com/codeatlas-dev/codeatlas/internal/server"
)

// Config is the top-level codeatlas configuration, corresponding to
// .codeatlas.yml.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" koanf:"dataset"`
	Server  server.Config `yaml:"server" koanf:"server"`
	Layout  layout.Config `yaml:"layout" koanf:"layout"`
	NotesDB string        `yaml:"notes_db" koanf:"notes_db"`
}

// DatasetConfig controls where the analysis dataset comes from and which
// files of it are kept.
type DatasetConfig struct {
	Path    string   `yaml:"path" koanf:"path"`
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}
