package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlocksmash loads the block puzzle configuration.
// Search order: customPath -> ~/.blocksmash/configs/blocksmash.yaml -> ./configs/blocksmash.yaml -> embedded default
func LoadBlocksmash(customPath string) (BlocksmashConfig, error) {
	var cfg BlocksmashConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blocksmash.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/blocksmash.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBlocksmashYAML, &cfg); err != nil {
		return DefaultBlocksmashConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blocksmash", "configs", filename)
}

// ApplyBlocksmashPreset modifies the config based on a difficulty preset.
func ApplyBlocksmashPreset(cfg *BlocksmashConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Adaptive.Enabled = false
		return
	}
	cfg.Adaptive.Enabled = true

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Undo.MaxDepth = 8
		cfg.Timing.BaseTimeLimitS = 180
		cfg.Scoring.TouchThreshold = 2
	case DifficultyHard:
		cfg.Undo.MaxDepth = 3
		cfg.Timing.BaseTimeLimitS = 90
		cfg.Scoring.PerfectBonus = 1500
	}
}
