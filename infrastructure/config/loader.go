package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader builds a Config from defaults, an optional YAML file and the
// environment, lowest priority first
type Loader struct {
	path string
}

// NewLoader creates a loader. An empty path skips the file layer.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the layers. It does not validate.
func (l *Loader) Load() (*Config, error) {
	cfg := Defaults()

	if l.path != "" {
		if err := loadYAML(l.path, cfg); err != nil {
			return nil, err
		}
		cfg.ConfigFile = l.path
	}

	applyEnv(cfg)
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
