package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Input polling ticks per second
	Seed     int64 // Board seed
	SeedSet  bool  // Seed was given explicitly; otherwise 0 lets the game pick its default
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Score awarded so far (only on a won run)
	GameOver bool // Whether the run has ended
	Won      bool // Whether the run ended on the exit
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Changed is true when the tick mutated the board or player.
	Changed bool
}

// RunSummary describes a finished run for the journal.
type RunSummary struct {
	Seed      int64
	Won       bool
	Score     int
	Moves     int
	Rotations int
	Deaths    int
}
