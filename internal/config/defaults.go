package config

import (
	_ "embed"
)

//go:embed defaults/thecell.yaml
var defaultCellYAML []byte

// DefaultCellConfig returns the built-in configuration. It matches the
// embedded defaults/thecell.yaml.
func DefaultCellConfig() CellConfig {
	return CellConfig{
		Board: BoardConfig{
			DeadlyCells:   9,
			EffectCells:   7,
			StartSlot:     12,
			ReservedSlot:  24,
			ExitSpan:      20,
			LockedColumns: []int{2},
		},
		Session: SessionConfig{
			DefaultSeed: 1966,
			RandomSeed:  false,
			Lives:       3,
			Fog:         true,
		},
		Scoring: ScoringConfig{
			Base:         1000,
			MoveCost:     10,
			RotationCost: 15,
			DeathCost:    200,
		},
	}
}
