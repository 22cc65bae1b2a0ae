package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is looked up in the working directory.
const ProjectFileName = "coolc.yaml"

// Config holds the optional project-level settings.
type Config struct {
	// DumpTypes prints the decorated AST after a clean analysis.
	DumpTypes bool `yaml:"dump_types"`
	// MaxErrors caps the number of reported diagnostics; 0 reports all.
	MaxErrors int `yaml:"max_errors"`
	// Color is "auto", "always" or "never".
	Color string `yaml:"color"`
}

func Default() *Config {
	return &Config{Color: "auto"}
}

// Load reads dir/coolc.yaml. A missing file is not an error: the
// defaults apply.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ProjectFileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ProjectFileName, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ProjectFileName, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if c.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.MaxErrors)
	}
	return nil
}
