package connect4

import "github.com/vovakirdan/tui-connect4/internal/games/connect4/engine"

// GameStateType is the adapter's coarse state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateWon         GameStateType = "won"
	StateTied        GameStateType = "tied"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game for tests and debugging.
type Snapshot struct {
	Tick   uint64
	Cursor int
	Active engine.Player
	Winner engine.Player
	Moves  int
	Board  string // engine.Board.String() form
	Status string
	State  GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.Phase() == engine.PhaseWon:
		state = StateWon
	case g.session.Phase() == engine.PhaseTied:
		state = StateTied
	}

	return Snapshot{
		Tick:   g.tick,
		Cursor: g.cursor,
		Active: g.session.ActivePlayer(),
		Winner: g.session.Winner(),
		Moves:  g.session.Moves(),
		Board:  g.session.Board().String(),
		Status: g.status,
		State:  state,
	}
}
