package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickMs returns the simulated duration of one tick in milliseconds.
func (c RuntimeConfig) TickMs() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60
	}
	return 1000.0 / float64(c.TickRate)
}

// RunStats is the final tally of a finished session.
type RunStats struct {
	Score       int
	Age         int
	Kills       int
	Gold        int
	SurvivedSec int
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int       // Current score
	GameOver bool      // Whether the session has ended
	Paused   bool      // Whether the simulation is paused (panel open, pause key)
	Final    *RunStats // Set once GameOver is true
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
