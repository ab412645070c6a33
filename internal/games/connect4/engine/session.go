package engine

import "errors"

// Reasons passed to RejectionListener for ignored moves.
var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrColumnFull       = errors.New("column is full")
	ErrGameOver         = errors.New("game is already over")
)

// Phase is the session's position in its state machine.
type Phase uint8

const (
	PhaseInProgress Phase = iota
	PhaseWon
	PhaseTied
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseWon:
		return "won"
	case PhaseTied:
		return "tied"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further moves are accepted.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseTied
}

// Listener receives session notifications. Calls happen synchronously
// inside SubmitMove, after the state change they describe.
type Listener interface {
	OnPiecePlaced(row, col int, p Player)
	OnGameWon(p Player)
	OnGameTied()
}

// ResetListener is optionally implemented by a Listener to learn about resets.
type ResetListener interface {
	OnReset()
}

// RejectionListener is optionally implemented by a Listener to learn about
// ignored moves. reason is one of ErrColumnOutOfRange, ErrColumnFull or
// ErrGameOver.
type RejectionListener interface {
	OnMoveRejected(col int, reason error)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnPiecePlaced(int, int, Player) {}
func (NopListener) OnGameWon(Player)               {}
func (NopListener) OnGameTied()                    {}

// MoveResult describes what SubmitMove did.
type MoveResult struct {
	Applied bool
	Row     int
	Col     int
	Player  Player
	Phase   Phase
}

// Session runs one game at a time on a board of fixed dimensions.
// It is not safe for concurrent use; callers feed it one move at a time.
type Session struct {
	rows, cols int
	board      *Board
	phase      Phase
	active     Player
	winner     Player
	moves      int
	listener   Listener
}

// NewSession creates a session in its initial state: empty board,
// Player1 to move. A nil listener is replaced by NopListener.
func NewSession(rows, cols int, l Listener) *Session {
	if l == nil {
		l = NopListener{}
	}
	s := &Session{rows: rows, cols: cols, listener: l}
	s.init()
	return s
}

// NewDefaultSession creates a 6x7 session.
func NewDefaultSession(l Listener) *Session {
	return NewSession(DefaultRows, DefaultCols, l)
}

func (s *Session) init() {
	s.board = NewBoard(s.rows, s.cols)
	s.phase = PhaseInProgress
	s.active = Player1
	s.winner = NoPlayer
	s.moves = 0
}

// SubmitMove drops the active player's piece into col.
// Moves after the game ended, into a full column, or outside the board are
// ignored: nothing changes and the Listener is not called.
func (s *Session) SubmitMove(col int) MoveResult {
	if s.phase.Terminal() {
		s.reject(col, ErrGameOver)
		return MoveResult{Col: col, Phase: s.phase}
	}

	row, ok := s.board.LandingRow(col)
	if !ok {
		if col < 0 || col >= s.cols {
			s.reject(col, ErrColumnOutOfRange)
		} else {
			s.reject(col, ErrColumnFull)
		}
		return MoveResult{Col: col, Phase: s.phase}
	}

	p := s.active
	s.board.Place(row, col, p)
	s.moves++
	s.listener.OnPiecePlaced(row, col, p)

	// A move that completes a line and fills the board is a win.
	switch {
	case HasWon(s.board, p):
		s.phase = PhaseWon
		s.winner = p
		s.listener.OnGameWon(p)
	case s.board.IsFull():
		s.phase = PhaseTied
		s.listener.OnGameTied()
	default:
		s.active = p.Other()
	}

	return MoveResult{Applied: true, Row: row, Col: col, Player: p, Phase: s.phase}
}

func (s *Session) reject(col int, reason error) {
	if rl, ok := s.listener.(RejectionListener); ok {
		rl.OnMoveRejected(col, reason)
	}
}

// Reset discards the current game and starts a fresh one.
func (s *Session) Reset() {
	s.init()
	if rl, ok := s.listener.(ResetListener); ok {
		rl.OnReset()
	}
}

// SetListener replaces the listener. A nil listener is replaced by NopListener.
func (s *Session) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	s.listener = l
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// ActivePlayer returns the player to move. It keeps its last value once
// the game is over.
func (s *Session) ActivePlayer() Player {
	return s.active
}

// Winner returns the winner, or NoPlayer unless the phase is PhaseWon.
func (s *Session) Winner() Player {
	return s.winner
}

// Moves returns the number of pieces placed in the current game.
func (s *Session) Moves() int {
	return s.moves
}

// Rows returns the board height.
func (s *Session) Rows() int {
	return s.rows
}

// Cols returns the board width.
func (s *Session) Cols() int {
	return s.cols
}

// Board returns a copy of the board. Mutating it does not affect the session.
func (s *Session) Board() *Board {
	return s.board.Clone()
}

// LandingRow reports where a piece dropped into col would land.
func (s *Session) LandingRow(col int) (int, bool) {
	if s.phase.Terminal() {
		return 0, false
	}
	return s.board.LandingRow(col)
}

// WinningRun returns the winner's four-in-a-row once the game is won.
func (s *Session) WinningRun() (Run, bool) {
	if s.phase != PhaseWon {
		return Run{}, false
	}
	return WinningRun(s.board, s.winner)
}
