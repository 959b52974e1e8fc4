package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.codejam/configs/codejam.yaml -> ./configs/codejam.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("codejam.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/codejam.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	return DefaultGameConfig(), nil
}

// LoadFiller returns the filler text for a session: the configured file if
// set, otherwise the embedded default.
func LoadFiller(cfg SessionConfig) (string, error) {
	if cfg.FillerPath == "" {
		return DefaultFiller(), nil
	}
	data, err := os.ReadFile(cfg.FillerPath)
	if err != nil {
		return "", fmt.Errorf("failed to read filler %s: %w", cfg.FillerPath, err)
	}
	if len(data) == 0 {
		return DefaultFiller(), nil
	}
	return string(data), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".codejam", "configs", filename)
}
