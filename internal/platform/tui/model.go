package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/registry"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

// columnPicker is implemented by games that map screen positions to moves.
type columnPicker interface {
	ColumnAt(x, y int) (int, bool)
}

// Options configures a Model.
type Options struct {
	// Store receives finished games. Nil disables the ledger.
	Store *storage.Store
	// Logger defaults to a discarding logger.
	Logger *log.Logger
	// Renderer defaults to lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer
	ShowHelp bool
	Mouse    bool
	// Now is used to time games. Defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	palette    Palette
	keys       KeyMapper
	help       help.Model
	helpStyle  lipgloss.Style
	showHelp   bool
	now        func() time.Time
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	started    time.Time
	width      int
	height     int
	quitting   bool
}

// NewModel creates a model for game. The game is reset in Init.
func NewModel(game registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cfg.TickRate = int(time.Second / tickInterval(cfg.TickRate))

	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	m := Model{
		game:       game,
		store:      opts.Store,
		logger:     opts.Logger,
		palette:    NewPalette(r),
		keys:       NewKeyMapper(DefaultKeyMap()),
		help:       help.New(),
		helpStyle:  r.NewStyle().Foreground(lipgloss.Color("241")),
		showHelp:   opts.ShowHelp,
		now:        opts.Now,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.config.ScreenH = m.gameHeight()
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)
	m.started = m.now()
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "width", m.config.ScreenW, "height", m.config.ScreenH)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToFrame(msg, &m.inputFrame) {
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("player quit", "game", m.game.ID(), "moves", m.gameState.Moves)
		return m, tea.Quit
	case core.ActionHelp:
		// hidden -> short -> full -> hidden
		switch {
		case !m.showHelp:
			m.showHelp = true
			m.help.ShowAll = false
		case !m.help.ShowAll:
			m.help.ShowAll = true
		default:
			m.showHelp = false
			m.help.ShowAll = false
		}
		m.resize(m.width, m.height)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	picker, ok := m.game.(columnPicker)
	if !ok {
		return m, nil
	}
	if col, ok := picker.ColumnAt(msg.X, msg.Y); ok {
		m.inputFrame.PushColumn(col)
	}
	return m, nil
}

// resize gives the game everything above the help bar.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	m.config.ScreenW = width
	m.config.ScreenH = m.gameHeight()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
}

func (m Model) gameHeight() int {
	h := m.height
	if m.showHelp {
		h -= lipgloss.Height(m.help.View(m.keys.Keys()))
	}
	return max(h, 0)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restarting := m.inputFrame.Has(core.ActionRestart)
	before := m.gameState.Moves

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	for _, o := range result.Outcomes {
		m.recordOutcome(o)
	}

	switch {
	case restarting:
		m.started = m.now()
		m.logger.Info("game restarted", "game", m.game.ID())
	case m.gameState.Moves != before:
		m.logger.Debug("pieces dropped", "game", m.game.ID(), "moves", m.gameState.Moves)
	}

	return m, tickCmd(m.config.TickRate)
}

// recordOutcome logs a finished game and saves it to the ledger.
// Storage errors are logged; the game continues regardless.
func (m Model) recordOutcome(o core.Outcome) {
	elapsed := m.now().Sub(m.started)
	m.logger.Info("game finished",
		"game", m.game.ID(),
		"winner", o.Winner,
		"moves", o.Moves,
		"duration", elapsed.Round(time.Second),
	)

	if m.store == nil {
		return
	}
	id, err := m.store.SaveResult(storage.Result{
		GameID:   m.game.ID(),
		Winner:   o.Winner,
		Player1:  o.Players[0],
		Player2:  o.Players[1],
		Moves:    o.Moves,
		Rows:     o.Rows,
		Cols:     o.Cols,
		Duration: elapsed,
	})
	if err != nil {
		m.logger.Warn("could not save result", "error", err)
		return
	}
	m.logger.Debug("result saved", "id", id)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := m.palette.Render(m.screen)

	if m.showHelp {
		out += "\n" + m.helpStyle.Render(m.help.View(m.keys.Keys()))
	}
	return out
}

// Run starts a local Bubble Tea program for game.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) error {
	model := NewModel(game, opts, cfg)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	_, err := tea.NewProgram(model, progOpts...).Run()
	return err
}
