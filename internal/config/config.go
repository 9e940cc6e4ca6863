// Package config provides YAML-based configuration loading and difficulty
// presets for The Cell.
package config

import (
	"fmt"

	"github.com/JocelynWeiss/theCell/internal/cell"
)

// CellConfig contains all configuration for a game of The Cell.
type CellConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Session SessionConfig `yaml:"session"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// BoardConfig defines how boards are generated and which lines may rotate.
type BoardConfig struct {
	DeadlyCells   int   `yaml:"deadly_cells"`
	EffectCells   int   `yaml:"effect_cells"`
	StartSlot     int   `yaml:"start_slot"`
	ReservedSlot  int   `yaml:"reserved_slot"`
	ExitSpan      int   `yaml:"exit_span"`
	LockedColumns []int `yaml:"locked_columns"`
}

// SessionConfig defines seeding and run rules.
type SessionConfig struct {
	DefaultSeed int64 `yaml:"default_seed"` // used when no seed is given
	RandomSeed  bool  `yaml:"random_seed"`  // derive the seed from the clock instead
	Lives       int   `yaml:"lives"`        // deaths allowed before the run ends
	Fog         bool  `yaml:"fog"`          // hide cell types until visited
}

// ScoringConfig defines how a won run is scored.
type ScoringConfig struct {
	Base         int `yaml:"base"`
	MoveCost     int `yaml:"move_cost"`
	RotationCost int `yaml:"rotation_cost"`
	DeathCost    int `yaml:"death_cost"`
}

// GeneratorConfig converts the board section into generator rules.
func (c CellConfig) GeneratorConfig() cell.GeneratorConfig {
	return cell.GeneratorConfig{
		DeadlyCount:  c.Board.DeadlyCells,
		EffectCount:  c.Board.EffectCells,
		StartSlot:    c.Board.StartSlot,
		ReservedSlot: c.Board.ReservedSlot,
		ExitSpan:     c.Board.ExitSpan,
	}
}

// Validate checks the configuration for values the game cannot run with.
func (c CellConfig) Validate() error {
	if err := c.GeneratorConfig().Validate(); err != nil {
		return fmt.Errorf("config: board: %w", err)
	}
	for _, col := range c.Board.LockedColumns {
		if col < 0 || col >= cell.BoardSize {
			return fmt.Errorf("config: board: locked column %d out of range 0..%d", col, cell.BoardSize-1)
		}
	}
	if c.Session.Lives < 1 {
		return fmt.Errorf("config: session: lives must be at least 1, got %d", c.Session.Lives)
	}
	if c.Scoring.Base < 0 || c.Scoring.MoveCost < 0 || c.Scoring.RotationCost < 0 || c.Scoring.DeathCost < 0 {
		return fmt.Errorf("config: scoring: values must not be negative")
	}
	return nil
}

// Score computes the score of a won run. It never goes below zero.
func (s ScoringConfig) Score(moves, rotations, deaths int) int {
	score := s.Base - moves*s.MoveCost - rotations*s.RotationCost - deaths*s.DeathCost
	if score < 0 {
		return 0
	}
	return score
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset keeps the loaded config as is.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
