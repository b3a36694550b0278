package config

import (
	"github.com/codeatlas-dev/codeatlas/internal/layout"
	"github.com/codeatlas-dev/codeatlas/internal/server"
)

// DefaultExcludes are glob patterns dropped from the dataset by default.
// The collaborator usually filters these already; this is the safety net
// for stale or hand-edited datasets.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"*.lock",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:    "capsules.json",
			Exclude: DefaultExcludes,
		},
		Server: server.Config{
			Port: 7430,
		},
		Layout:  layout.DefaultConfig(),
		NotesDB: ".codeatlas/notes.db",
	}
}
