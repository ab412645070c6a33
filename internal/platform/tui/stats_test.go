package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-connect4/internal/storage"
)

func TestStatsModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	m := NewStatsModel(store, "connect4", 10, 100, 30)
	assert.Contains(t, m.View(), "No games recorded yet.")

	_, err = store.SaveResult(storage.Result{
		GameID: "connect4", Winner: 2, Player1: "Ada", Player2: "Bob",
		Moves: 18, Rows: 6, Cols: 7, Duration: 95 * time.Second,
	})
	require.NoError(t, err)

	next, _ := m.Update(runeKey('r'))
	m = next.(StatsModel)
	view := m.View()

	assert.Contains(t, view, "Games: 1")
	assert.Contains(t, view, "Player 2 wins: 1")
	assert.Contains(t, view, "Bob")
	assert.Contains(t, view, "6x7")
	assert.Contains(t, view, "1m35s")

	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestSummaryLine(t *testing.T) {
	line := SummaryLine(storage.Stats{Games: 4, Player1Wins: 2, Player2Wins: 1, Ties: 1, AvgMoves: 19.5})

	assert.Equal(t, "Games: 4   Player 1 wins: 2   Player 2 wins: 1   Ties: 1   Avg moves: 19.5", line)
}
