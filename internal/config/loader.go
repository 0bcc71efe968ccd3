package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "blockbreaker.yaml"

// Source names where a loaded config came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
)

// Load loads Block Breaker configuration and validates it.
// Search order: customPath -> ~/.blockbreaker/config.yaml -> ./configs/blockbreaker.yaml -> embedded default.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func Load(customPath string) (Config, Source, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, SourceCustom, err
		}
		return cfg, SourceCustom, cfg.Validate()
	}

	// Try user config directory
	if p := userConfigPath("config.yaml"); p != "" {
		if cfg, err := loadFile(p); err == nil && cfg.Validate() == nil {
			return cfg, SourceUser, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", FileName)); err == nil && cfg.Validate() == nil {
		return cfg, SourceLocal, nil
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// loadFile decodes a config file over the defaults, so omitted keys keep default values.
func loadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockbreaker", filename)
}
