package config

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
)

// projectTypePatterns maps marker files to human-readable project types
// and a recommended include glob for the dataset filter.
var projectTypePatterns = map[string]struct {
	Name    string
	Include string
}{
	"go.mod":           {Name: "Go", Include: "**/*.go"},
	"package.json":     {Name: "Node.js/TypeScript", Include: "**/*.{js,ts,jsx,tsx}"},
	"requirements.txt": {Name: "Python", Include: "**/*.py"},
	"pyproject.toml":   {Name: "Python", Include: "**/*.py"},
	"Cargo.toml":       {Name: "Rust", Include: "**/*.rs"},
	"pom.xml":          {Name: "Java", Include: "**/*.java"},
	"Gemfile":          {Name: "Ruby", Include: "**/*.rb"},
	"composer.json":    {Name: "PHP", Include: "**/*.php"},
}

// detectProjectType checks the current directory for well-known project
// markers.
func detectProjectType() (name string, include string) {
	for marker, info := range projectTypePatterns {
		matches, _ := filepath.Glob(marker)
		if len(matches) > 0 {
			return info.Name, info.Include
		}
	}
	return "", ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to codeatlas! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	projType, include := detectProjectType()
	if projType != "" {
		fmt.Printf("Detected project type: %s\n\n", projType)
		cfg.Dataset.Include = []string{include}
	}

	datasetPrompt := promptui.Prompt{
		Label:   "Analysis dataset file",
		Default: cfg.Dataset.Path,
	}
	datasetPath, err := datasetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dataset path: %w", err)
	}
	cfg.Dataset.Path = datasetPath

	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	corsPrompt := promptui.Select{
		Label: "CORS policy",
		Items: []string{"localhost only", "allow all origins (dev)"},
	}
	corsIdx, _, err := corsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cors selection: %w", err)
	}
	cfg.Server.AllowAll = corsIdx == 1

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
