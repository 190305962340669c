package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBoxing loads boxing configuration.
// Search order: customPath -> ~/.ringside/configs/boxing.yaml -> ./configs/boxing.yaml -> embedded default
func LoadBoxing(customPath string) (BoxingConfig, error) {
	// Start from defaults so partial files only override what they set.
	cfg := DefaultBoxingConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("boxing.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "boxing.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	cfg = DefaultBoxingConfig()
	if err := yaml.Unmarshal(defaultBoxingYAML, &cfg); err != nil {
		return DefaultBoxingConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, broken or invalid files
// are skipped so the next source in the search order is used.
func tryLoad(path string) (BoxingConfig, bool) {
	cfg := DefaultBoxingConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ringside", "configs", filename)
}

// ApplyBoxingPreset modifies the config based on a difficulty preset.
func ApplyBoxingPreset(cfg *BoxingConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
