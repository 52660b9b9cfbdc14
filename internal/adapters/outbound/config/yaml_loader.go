package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abdidvp/flooring/internal/domain"
)

// YAMLLoader implements domain.ConfigLoader by reading .flooring.yaml.
type YAMLLoader struct{}

var _ domain.ConfigLoader = (*YAMLLoader)(nil)

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .flooring.yaml from root.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(root string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(root, domain.ConfigFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", domain.ConfigFileName, err)
	}

	// Validate before merging so errors point at what the user wrote.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", domain.ConfigFileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// Write stores cfg as root/.flooring.yaml. An existing file is only
// replaced when force is set.
func (l *YAMLLoader) Write(root string, cfg domain.Config, force bool) (string, error) {
	path := filepath.Join(root, domain.ConfigFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", domain.ConfigFileName)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", root, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", domain.ConfigFileName, err)
	}
	return path, nil
}

// mergeConfig overlays explicit values on top of the defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	if override.OrdersDir != "" {
		result.OrdersDir = override.OrdersDir
	}
	if override.ProductsFile != "" {
		result.ProductsFile = override.ProductsFile
	}
	if override.TaxesFile != "" {
		result.TaxesFile = override.TaxesFile
	}
	if override.ExportFile != "" {
		result.ExportFile = override.ExportFile
	}
	if override.MinArea != "" {
		result.MinArea = override.MinArea
	}
	if override.RequireFutureDates != nil {
		result.RequireFutureDates = override.RequireFutureDates
	}

	// State names extend the default table; explicit entries win.
	if len(override.States) > 0 {
		states := maps.Clone(base.States)
		if states == nil {
			states = make(map[string]string, len(override.States))
		}
		maps.Copy(states, override.States)
		result.States = states
	}

	return result
}
