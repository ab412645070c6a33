package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

// fakeClock advances one second per call.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestModel(t *testing.T, opts Options) (Model, *connect4.Game) {
	t.Helper()

	game := connect4.New(connect4.DefaultOptions())
	m := NewModel(game, opts, core.DefaultConfig())
	require.NotNil(t, m.Init())
	return m, game
}

// send feeds msg to the model and runs one tick.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	next, _ = next.(Model).Update(TickMsg(time.Now()))
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// update feeds msg to the model without running a tick.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestModel_DigitKeysDrop(t *testing.T) {
	m, game := newTestModel(t, Options{})

	m = send(t, m, runeKey('4'))
	m = send(t, m, runeKey('4'))

	assert.Equal(t, 2, m.gameState.Moves)
	assert.Equal(t, ".......\n.......\n.......\n.......\n...2...\n...1...", game.Snapshot().Board)
}

func TestModel_KeysBetweenTicksAreAllApplied(t *testing.T) {
	t.Run("two column keys", func(t *testing.T) {
		m, game := newTestModel(t, Options{})

		m = update(t, m, runeKey('1'))
		m = update(t, m, runeKey('2'))
		m = update(t, m, TickMsg(time.Now()))

		assert.Equal(t, 2, m.gameState.Moves)
		assert.Equal(t, ".......\n.......\n.......\n.......\n.......\n12.....", game.Snapshot().Board)
	})

	t.Run("two drops", func(t *testing.T) {
		m, game := newTestModel(t, Options{})
		space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

		m = update(t, m, space)
		m = update(t, m, space)
		m = update(t, m, TickMsg(time.Now()))

		assert.Equal(t, 2, m.gameState.Moves)
		assert.Equal(t, ".......\n.......\n.......\n.......\n...2...\n...1...", game.Snapshot().Board)
	})

	t.Run("click then key", func(t *testing.T) {
		m, game := newTestModel(t, Options{Mouse: true})

		m = update(t, m, tea.MouseMsg{X: 35, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m = update(t, m, runeKey('3'))
		m = update(t, m, TickMsg(time.Now()))

		assert.Equal(t, 2, m.gameState.Moves)
		assert.Equal(t, ".......\n.......\n.......\n.......\n..2....\n..1....", game.Snapshot().Board)
	})
}

func TestModel_WinAndRestartBeforeTickIsRecorded(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	m, _ := newTestModel(t, Options{Store: store})
	for _, r := range "414141" {
		m = send(t, m, runeKey(r))
	}

	m = update(t, m, runeKey('4'))
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg(time.Now()))

	assert.Equal(t, 0, m.gameState.Moves)
	stats, err := store.Stats(connect4.GameID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Player1Wins)
}

func TestModel_MouseClickDrops(t *testing.T) {
	m, game := newTestModel(t, Options{Mouse: true})

	// Column 3's glyph on an 80-column screen.
	m = send(t, m, tea.MouseMsg{X: 35, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, 1, m.gameState.Moves)
	assert.Equal(t, 2, game.Cursor())

	m = send(t, m, tea.MouseMsg{X: 35, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, m.gameState.Moves, "only presses drop pieces")
}

func TestModel_SavesFinishedGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m, _ := newTestModel(t, Options{Store: store, Now: clock.Now})

	for _, r := range "4141414" {
		m = send(t, m, runeKey(r))
	}
	require.True(t, m.gameState.GameOver)

	// More ticks after the end must not record the game twice.
	send(t, m, runeKey('5'))

	stats, err := store.Stats(connect4.GameID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 1, stats.Player1Wins)

	results, err := store.RecentResults(connect4.GameID, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 7, results[0].Moves)
	assert.Equal(t, "Player 1", results[0].WinnerName())
	assert.Equal(t, time.Second, results[0].Duration)
}

func TestModel_RestartStartsNewGame(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(t, m, runeKey('1'))
	m = send(t, m, runeKey('2'))

	m = send(t, m, runeKey('r'))

	assert.Equal(t, 0, m.gameState.Moves)
	assert.False(t, m.gameState.GameOver)
}

func TestModel_HelpCyclesAndResizesGame(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	require.Equal(t, 24, m.screen.Height())

	next, _ := m.Update(runeKey('?'))
	m = next.(Model)
	assert.True(t, m.showHelp)
	assert.Equal(t, 23, m.screen.Height())
	assert.Contains(t, m.View(), "new game")

	next, _ = m.Update(runeKey('?'))
	m = next.(Model)
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.screen.Height(), 23)
	assert.Contains(t, m.View(), "drop in column")

	next, _ = m.Update(runeKey('?'))
	m = next.(Model)
	assert.False(t, m.showHelp)
	assert.Equal(t, 24, m.screen.Height())
}

func TestModel_ResizeKeepsGame(t *testing.T) {
	m, game := newTestModel(t, Options{})
	m = send(t, m, runeKey('1'))

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 1, m.gameState.Moves)
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 30, m.screen.Height())
	assert.Equal(t, connect4.StatePlaying, game.Snapshot().State)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	next, cmd := m.Update(runeKey('q'))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, Options{ShowHelp: true})

	view := m.View()

	assert.Contains(t, view, "Connect Four")
	assert.Contains(t, view, "Player 1 (X) to move")
	assert.Contains(t, view, "quit")
}
