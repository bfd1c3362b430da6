package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// maxConfigSize caps the config file read to guard against accidents.
const maxConfigSize = 1 * 1024 * 1024 // 1MB

// DefaultPath returns the standard config file location,
// ~/.sprout/config.yaml. An empty string means no home directory is
// available and only defaults apply.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sprout", "config.yaml")
}

// Load reads the config file at path and merges it over defaults.
// A missing file is not an error: defaults are returned with a debug
// log line. Invalid YAML or invalid values are.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		slog.Debug("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: stat %q: %w", path, err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("%w: file %q exceeds %d bytes", ErrInvalidConfig, path, maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidYAML, path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
