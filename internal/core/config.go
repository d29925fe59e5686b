package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Frame callbacks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	Player     string // Name scores are recorded under
	Difficulty string // Preset name overriding the process-wide one; empty keeps it
	Best       int    // Best score already known for Player, shown until the sink reports
	Clock      Clock  // Frame timing source; nil means wall clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "player",
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score (floored)
	Best     int  // Best score reported by the score sink, 0 if unknown
	Running  bool // Whether a session is being simulated
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	Ended bool // True only on the frame the session became terminal
}
