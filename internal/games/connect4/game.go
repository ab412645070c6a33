// Package connect4 adapts the Connect Four engine to the arcade platform:
// it turns input frames into cursor moves and drops, listens to the
// engine's notifications, and draws the board into a core.Screen.
package connect4

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4/engine"
	"github.com/vovakirdan/tui-connect4/internal/registry"
)

// GameID is the registry and ledger identifier.
const GameID = "connect4"

// PlayerStyle controls how a player is displayed.
type PlayerStyle struct {
	Name   string
	Symbol rune
	Color  core.Color
}

// Options configures a new Game.
type Options struct {
	Rows    int
	Cols    int
	Players [2]PlayerStyle
}

// DefaultOptions returns the classic 6x7 board with red X and yellow O.
func DefaultOptions() Options {
	return Options{
		Rows: engine.DefaultRows,
		Cols: engine.DefaultCols,
		Players: [2]PlayerStyle{
			{Name: "Player 1", Symbol: 'X', Color: core.ColorBrightRed},
			{Name: "Player 2", Symbol: 'O', Color: core.ColorBrightYellow},
		},
	}
}

var (
	optionsMu sync.RWMutex
	options   = DefaultOptions()
)

// SetOptions changes the options used by games created through the registry.
func SetOptions(opts Options) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	options = opts
}

func currentOptions() Options {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	return options
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New(currentOptions())
	})
}

// flashDuration is how long a rejected-move message stays on screen.
const flashDuration = 2 * time.Second

// Game is a hot-seat Connect Four game.
type Game struct {
	opts    Options
	session *engine.Session

	tick     uint64
	tickRate int
	cursor   int
	lastMove engine.Coord
	hasLast  bool

	status      string
	statusColor core.Color
	// statusUntil is the tick a flashed status expires at; 0 keeps it.
	statusUntil uint64

	// outcomes collects games finished since the last Step returned.
	outcomes []core.Outcome

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game with the given options. The first game starts on
// the first Reset.
func New(opts Options) *Game {
	g := &Game{opts: opts, tickRate: core.DefaultConfig().TickRate}
	g.session = engine.NewSession(opts.Rows, opts.Cols, g)
	g.cursor = opts.Cols / 2
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Connect Four"
}

// Reset starts a new game sized for the given screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.session.Reset()
	g.outcomes = nil
}

// Resize adapts to a new screen size without touching the game in progress.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < g.minWidth() || height < g.minHeight()
}

// Step applies one frame of input, entry by entry in arrival order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.statusUntil != 0 && g.tick >= g.statusUntil {
		g.status = ""
		g.statusUntil = 0
	}

	for _, input := range in.Inputs {
		g.apply(input)
	}

	res := core.StepResult{State: g.State(), Outcomes: g.outcomes}
	g.outcomes = nil
	return res
}

func (g *Game) apply(in core.Input) {
	// Restart is available at any time, even mid-game.
	if in.Action == core.ActionRestart {
		g.session.Reset()
		return
	}
	if g.tooSmall {
		return
	}

	cols := g.opts.Cols
	switch in.Action {
	case core.ActionLeft:
		g.cursor = core.Wrap(g.cursor-1, cols)
	case core.ActionRight:
		g.cursor = core.Wrap(g.cursor+1, cols)
	case core.ActionDrop:
		g.session.SubmitMove(g.cursor)
	case core.ActionColumn:
		if in.Column >= 0 && in.Column < cols {
			g.cursor = in.Column
		}
		g.session.SubmitMove(in.Column)
	}
}

// State returns the platform-level state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Moves:    g.session.Moves(),
		GameOver: g.session.Phase().Terminal(),
		Paused:   g.tooSmall,
	}
}

// Outcome describes the current game. Winner is 0 unless someone has won.
func (g *Game) Outcome() core.Outcome {
	return core.Outcome{
		Winner:  int(g.session.Winner()),
		Moves:   g.session.Moves(),
		Rows:    g.opts.Rows,
		Cols:    g.opts.Cols,
		Players: [2]string{g.opts.Players[0].Name, g.opts.Players[1].Name},
	}
}

// Cursor returns the column the drop cursor is over.
func (g *Game) Cursor() int {
	return g.cursor
}

// Status returns the message shown under the board.
func (g *Game) Status() string {
	return g.status
}

func (g *Game) style(p engine.Player) PlayerStyle {
	if p == engine.Player2 {
		return g.opts.Players[1]
	}
	return g.opts.Players[0]
}

func (g *Game) setStatus(color core.Color, format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusColor = color
	g.statusUntil = 0
}

// flash shows a gray status that clears itself after flashDuration.
func (g *Game) flash(format string, args ...any) {
	g.setStatus(core.ColorGray, format, args...)
	g.statusUntil = g.tick + uint64(flashDuration.Seconds()*float64(g.tickRate))
}

// OnPiecePlaced implements engine.Listener.
func (g *Game) OnPiecePlaced(row, col int, p engine.Player) {
	g.lastMove = engine.Coord{Row: row, Col: col}
	g.hasLast = true
	g.status = ""
	g.statusUntil = 0
}

// OnGameWon implements engine.Listener.
func (g *Game) OnGameWon(p engine.Player) {
	s := g.style(p)
	g.setStatus(s.Color, "%s won! Press R to play again", s.Name)
	g.outcomes = append(g.outcomes, g.Outcome())
}

// OnGameTied implements engine.Listener.
func (g *Game) OnGameTied() {
	g.setStatus(core.ColorWhite, "This game ends in a tie. Press R to play again")
	g.outcomes = append(g.outcomes, g.Outcome())
}

// OnMoveRejected implements engine.RejectionListener.
func (g *Game) OnMoveRejected(col int, reason error) {
	switch {
	case errors.Is(reason, engine.ErrColumnFull):
		g.flash("Column %d is full", col+1)
	case errors.Is(reason, engine.ErrColumnOutOfRange):
		g.flash("There is no column %d", col+1)
	case errors.Is(reason, engine.ErrGameOver):
		g.flash("The game is over. Press R to play again")
	}
}

// OnReset implements engine.ResetListener.
func (g *Game) OnReset() {
	g.cursor = g.opts.Cols / 2
	g.hasLast = false
	g.status = ""
	g.statusUntil = 0
}
