package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-cca/internal/registry"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "cca.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.tui-cca/configs/cca.yaml -> ./configs/cca.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Fields missing from a file keep their defaults
	cfg := DefaultConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if loaded, ok := tryFile(userCfgPath); ok {
			return loaded, nil
		}
	}

	if loaded, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return loaded, nil
	}

	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile reads and parses path on top of the defaults.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tui-cca", "configs", filename)
}

// ApplyPreset replaces the rule with the preset's rule.
func ApplyPreset(cfg *Config, p registry.Preset) {
	cfg.Preset = p.ID
	cfg.SetRule(p.Rule)
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
