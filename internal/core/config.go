package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Redraw ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game as seen by the platform.
type GameState struct {
	Moves    int  // Pieces placed so far
	GameOver bool // Whether the game has ended
	Paused   bool // Input is ignored (e.g. window too small)
}

// Outcome describes a finished game.
type Outcome struct {
	Winner  int // 1 or 2; 0 for a tie
	Moves   int
	Rows    int
	Cols    int
	Players [2]string
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
	// Outcomes lists the games that ended during this step, oldest first.
	// Each game is reported exactly once.
	Outcomes []Outcome
}

// Finished reports whether any game ended during this step.
func (r StepResult) Finished() bool {
	return len(r.Outcomes) > 0
}
