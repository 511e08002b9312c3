package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the user and local directories.
const ConfigFile = "polytris.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.polytris/config.yaml -> ./configs/polytris.yaml -> embedded default
//
// Files are decoded over DefaultConfig, so a file only needs the keys it
// changes. The result is validated before it is returned.
func Load(customPath string) (Config, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the configuration came
// from: a file path or "embedded".
func LoadWithSource(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, validate(cfg, customPath)
	}

	// Try user config directory, then local configs directory. A missing
	// file falls through; an unreadable or malformed one is an error.
	for _, path := range []string{userConfigPath(), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		cfg, err := readFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return cfg, path, err
		}
		return cfg, path, validate(cfg, path)
	}

	// Use embedded default YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", validate(cfg, "embedded")
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

func readFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg Config, source string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", source, err)
	}
	return nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".polytris", "config.yaml")
}
