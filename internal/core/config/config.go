package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultDatasetURL is where fetch downloads the published program dataset.
// The dataset is served next to the program page it was generated from.
const DefaultDatasetURL = "https://www.ndss-symposium.org/ndss-program/symposium-2026/data/program.json"

// DefaultShareBaseURL is the page share links point at. The starred set is
// carried in the URL fragment so any copy of the program viewer can adopt it.
const DefaultShareBaseURL = "https://www.ndss-symposium.org/ndss-program/symposium-2026/"

const DefaultExportTemplate = `# {{title}}

{{#days}}
## {{label}}{{#date}} ({{date}}){{/date}}

{{#sessions}}
- {{#time_range}}{{time_range}} {{/time_range}}**{{title}}**{{#room}} ({{room}}){{/room}}{{#conflict}} [conflicts with another pick]{{/conflict}}
{{/sessions}}
{{/days}}
{{#share_url}}
Share link: {{share_url}}
{{/share_url}}`

type Config struct {
	DatasetURL     string // dataset download location
	ShareBaseURL   string // base URL share links are built on
	BrowserCommand string // custom command to open URLs (optional)
	ExportTemplate string // mustache template for agenda export
}

type tomlConfig struct {
	DatasetURL     string `toml:"dataset_url"`
	ShareBaseURL   string `toml:"share_base_url"`
	BrowserCommand string `toml:"browser_command"`
}

// Dir returns the confsched config directory
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "confsched"), nil
}

// DefaultDBPath returns the standard database location
func DefaultDBPath() string {
	dir, err := Dir()
	if err != nil {
		return "program.db"
	}
	return filepath.Join(dir, "program.db")
}

// DefaultDatasetPath returns where fetch stores downloaded datasets
func DefaultDatasetPath() string {
	dir, err := Dir()
	if err != nil {
		return "program.json"
	}
	return filepath.Join(dir, "program.json")
}

// Load reads config from ~/.config/confsched/
func Load() (*Config, error) {
	cfg := &Config{
		DatasetURL:     DefaultDatasetURL,
		ShareBaseURL:   DefaultShareBaseURL,
		ExportTemplate: DefaultExportTemplate,
	}

	dir, err := Dir()
	if err != nil {
		return cfg, nil // Use defaults
	}

	tomlPath := filepath.Join(dir, "config.toml")
	templatePath := filepath.Join(dir, "export_template.mustache")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.DatasetURL != "" {
				cfg.DatasetURL = tc.DatasetURL
			}
			if tc.ShareBaseURL != "" {
				cfg.ShareBaseURL = tc.ShareBaseURL
			}
			cfg.BrowserCommand = strings.TrimSpace(tc.BrowserCommand)
		}
	}

	// If a custom export template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.ExportTemplate = string(data)
	}

	return cfg, nil
}
