// Package config provides the user-level configuration for sprout. It
// loads an optional YAML file, applies defaults for missing values, and
// validates the result.
package config

import (
	"errors"
	"fmt"
)

// Default values applied when the config file is missing or partial.
const (
	DefaultRegistryURL           = "https://registry.npmjs.org"
	DefaultNpmBin                = "npm"
	DefaultInstallTimeoutSeconds = 300
	DefaultLanguage              = "javascript"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidYAML indicates invalid YAML syntax in the config file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")

	// ErrInvalidConfig indicates a config value is out of range.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the user configuration read from ~/.sprout/config.yaml.
type Config struct {
	// Registry is the npm registry base URL used for version resolution.
	Registry string `yaml:"registry"`

	// NpmBin is the package manager binary invoked for init and install.
	NpmBin string `yaml:"npm_bin"`

	// InstallTimeoutSeconds bounds the whole npm install invocation.
	InstallTimeoutSeconds int `yaml:"install_timeout_seconds"`

	// DefaultLanguage preselects the language question: javascript or typescript.
	DefaultLanguage string `yaml:"default_language"`
}

// NewDefaultConfig returns a Config with every field at its default.
func NewDefaultConfig() *Config {
	return &Config{
		Registry:              DefaultRegistryURL,
		NpmBin:                DefaultNpmBin,
		InstallTimeoutSeconds: DefaultInstallTimeoutSeconds,
		DefaultLanguage:       DefaultLanguage,
	}
}

// applyDefaults fills unset fields in place.
func (c *Config) applyDefaults() {
	if c.Registry == "" {
		c.Registry = DefaultRegistryURL
	}
	if c.NpmBin == "" {
		c.NpmBin = DefaultNpmBin
	}
	if c.InstallTimeoutSeconds <= 0 {
		c.InstallTimeoutSeconds = DefaultInstallTimeoutSeconds
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
}

// Validate checks value ranges after defaults were applied.
func (c *Config) Validate() error {
	if c.DefaultLanguage != "javascript" && c.DefaultLanguage != "typescript" {
		return fmt.Errorf("%w: default_language must be javascript or typescript, got %q", ErrInvalidConfig, c.DefaultLanguage)
	}
	return nil
}
