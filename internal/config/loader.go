package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadRise loads the Rise configuration and validates it.
// Search order: customPath -> ~/.rise/configs/rise.{yaml,toml} -> ./configs/rise.yaml -> embedded default.
// Files only need to mention the keys they change; everything else keeps its default.
func LoadRise(customPath string) (RiseConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{
		userConfigPath("rise.yaml"),
		userConfigPath("rise.toml"),
		filepath.Join("configs", "rise.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// A broken user file falls through to the next candidate, like the embedded fallback.
		if cfg, err := loadFile(path); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg := DefaultRiseConfig()
	if err := yaml.Unmarshal(defaultRiseYAML, &cfg); err != nil {
		return DefaultRiseConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// Parse decodes configuration data on top of the defaults.
// Format is "yaml" or "toml".
func Parse(data []byte, format string) (RiseConfig, error) {
	cfg := DefaultRiseConfig()
	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse toml: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse yaml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("config: unsupported format %q", format)
	}
	return cfg, nil
}

// loadFile reads a YAML or TOML file (by extension) over the defaults.
func loadFile(path string) (RiseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultRiseConfig(), fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := Parse(data, format)
	if err != nil {
		return cfg, fmt.Errorf("%w (file %s)", err, path)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rise", "configs", filename)
}
