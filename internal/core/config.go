package core

// RuntimeConfig contains configuration passed to games at initialization.
// Frontends fill it from the terminal or window they own.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (cell frontends only)
	ScreenH  int   // Screen height in characters (cell frontends only)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic block fields
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

// GameState summarizes a game for the platform.
type GameState struct {
	Score    int  // Current score
	Running  bool // Whether ticks currently advance the simulation
	GameOver bool // Whether the ball has been lost

	Ticks  uint64 // Simulation ticks in the current game
	Blocks int    // Blocks destroyed in the current game
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState

	// ConnectRequested is set when a click arrived while the gate was closed.
	// The platform should start the gate's connect action off the tick loop.
	ConnectRequested bool

	// Ended is set on the frame the game transitioned to game over.
	Ended bool
}

// Gate is the read-only view of the wallet gate that games consult.
// Play is only permitted while Connected returns true.
type Gate interface {
	Connected() bool
}

// OpenGate is a Gate that always permits play.
type OpenGate struct{}

// Connected always returns true.
func (OpenGate) Connected() bool { return true }
