package main

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"

	"github.com/hengadev/serialx/internal/codegen"
)

// DefaultConfigFile is looked up from the working directory up to the
// project root when -config is not given.
const DefaultConfigFile = "serialx.yaml"

// Config represents the configuration for the code generator
type Config struct {
	Version    string                   `yaml:"version"`
	Generation GenerationConfig         `yaml:"generation"`
	Packages   map[string]PackageConfig `yaml:"packages"`
}

// GenerationConfig holds general generation settings
type GenerationConfig struct {
	OutputFile   string `yaml:"output_file"`
	PackageAlias string `yaml:"package_alias"`
}

// PackageConfig holds per-package overrides
type PackageConfig struct {
	OutputFile string `yaml:"output_file"`
	Skip       bool   `yaml:"skip"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{Packages: make(map[string]PackageConfig)}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Packages == nil {
		config.Packages = make(map[string]PackageConfig)
	}
	return config, nil
}

// ResolveConfig loads the configuration at path. When path was not set
// explicitly and no file is found, the defaults are used.
func ResolveConfig(path string, explicit bool) (*Config, string, error) {
	if !explicit {
		found, err := codegen.FindConfigFile(".", path)
		if err != nil {
			return DefaultConfig(), "", nil
		}
		path = found
	}

	config, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	if err := config.Validate(); err != nil {
		return nil, path, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, path, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Generation: GenerationConfig{
			OutputFile:   codegen.DefaultOutputFile,
			PackageAlias: "serialx",
		},
		Packages: make(map[string]PackageConfig),
	}
}

// Validate fills in defaults and reports every invalid setting.
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.Generation.OutputFile == "" {
		c.Generation.OutputFile = codegen.DefaultOutputFile
	}
	if c.Generation.PackageAlias == "" {
		c.Generation.PackageAlias = "serialx"
	}

	var errs errsx.Map
	if c.Version != "1" {
		errs.Set("version", fmt.Errorf("unsupported version '%s'", c.Version))
	}
	if err := validateOutputFile(c.Generation.OutputFile); err != nil {
		errs.Set("generation.output_file", err)
	}
	if !token.IsIdentifier(c.Generation.PackageAlias) || c.Generation.PackageAlias == "_" {
		errs.Set("generation.package_alias", fmt.Errorf("'%s' is not a valid Go identifier", c.Generation.PackageAlias))
	}
	for pkg, pkgConfig := range c.Packages {
		if pkgConfig.OutputFile == "" {
			continue
		}
		if err := validateOutputFile(pkgConfig.OutputFile); err != nil {
			errs.Set("packages."+pkg+".output_file", err)
		}
	}
	return errs.AsError()
}

// OutputFile returns the generated file name for pkg.
func (c *Config) OutputFile(pkg string) string {
	if pkgConfig, ok := c.Packages[pkg]; ok && pkgConfig.OutputFile != "" {
		return pkgConfig.OutputFile
	}
	return c.Generation.OutputFile
}

// Skip reports whether pkg is excluded from generation.
func (c *Config) Skip(pkg string) bool {
	return c.Packages[pkg].Skip
}

func validateOutputFile(name string) error {
	switch {
	case name != filepath.Base(name):
		return fmt.Errorf("'%s' must be a file name, not a path", name)
	case !strings.HasSuffix(name, ".go"):
		return fmt.Errorf("'%s' must have the .go extension", name)
	case strings.HasSuffix(name, "_test.go"):
		return fmt.Errorf("'%s' would only be compiled in tests", name)
	}
	return nil
}
