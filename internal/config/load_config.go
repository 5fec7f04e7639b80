package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// DefaultName is how the embedded catalog is referred to in logs and reports.
const DefaultName = "<embedded>"

// LoadConfig reads a catalog file and returns the parsed Config.
// An empty path selects the catalog embedded in the binary.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return ParseConfig(defaultCatalog)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	cfg, err := ParseConfig(raw)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the embedded catalog. It panics if the embedded file is
// malformed, which can only happen at development time.
func Default() Config {
	cfg, err := ParseConfig(defaultCatalog)
	if err != nil {
		panic("embedded catalog is invalid: " + err.Error())
	}
	return cfg
}

// ParseConfig decodes and validates a catalog document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	// Extras must name what they install; version and index are optional
	for owner, specs := range cfg.Extras {
		if strings.TrimSpace(owner) == "" {
			return Config{}, fmt.Errorf("extras: empty package name")
		}
		for i, spec := range specs {
			if strings.TrimSpace(spec.Name) == "" {
				return Config{}, fmt.Errorf("extras %q: entry %d has no name", owner, i)
			}
		}
	}

	return cfg, nil
}

// Marshal renders the config as YAML, e.g. for the catalog command.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
