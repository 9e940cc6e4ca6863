package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const cellConfigFile = "thecell.yaml"

// LoadCell loads The Cell configuration.
// Search order: customPath -> ~/.thecell/configs/thecell.yaml -> ./configs/thecell.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadCell(customPath string) (CellConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCellConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseCell(data)
		if err != nil {
			return DefaultCellConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath(cellConfigFile), filepath.Join("configs", cellConfigFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseCell(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseCell(defaultCellYAML)
	if err != nil {
		return DefaultCellConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCell decodes YAML over the defaults and validates the result.
func parseCell(data []byte) (CellConfig, error) {
	cfg := DefaultCellConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".thecell", "configs", filename)
}

// ApplyCellPreset modifies the config based on a difficulty preset.
func ApplyCellPreset(cfg *CellConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.DeadlyCells = 6
		cfg.Board.EffectCells = 5
		cfg.Session.Lives = 5
		cfg.Session.Fog = false
	case DifficultyNormal:
		cfg.Board.DeadlyCells = 9
		cfg.Board.EffectCells = 7
		cfg.Session.Lives = 3
	case DifficultyHard:
		cfg.Board.DeadlyCells = 12
		cfg.Board.EffectCells = 8
		cfg.Session.Lives = 1
		cfg.Session.Fog = true
	}
}
