package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-connect4/internal/storage"
)

// StatsKeyMap defines the key bindings for the statistics view.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Quit}}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel shows aggregate results and the most recent games.
type StatsModel struct {
	store   *storage.Store
	gameID  string
	limit   int
	stats   storage.Stats
	results []storage.Result
	err     error

	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	height   int
	quitting bool
}

// NewStatsModel loads the ledger for gameID and builds the view.
func NewStatsModel(store *storage.Store, gameID string, limit, width, height int) StatsModel {
	m := StatsModel{
		store:  store,
		gameID: gameID,
		limit:  limit,
		help:   help.New(),
		keys:   DefaultStatsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Winner", Width: 16},
		{Title: "Moves", Width: 6},
		{Title: "Board", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)), // Summary, borders and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *StatsModel) load() {
	m.err = nil
	if m.store == nil {
		m.results = nil
		m.updateTableRows()
		return
	}

	stats, err := m.store.Stats(m.gameID)
	if err != nil {
		m.err = err
		return
	}
	results, err := m.store.RecentResults(m.gameID, m.limit)
	if err != nil {
		m.err = err
		return
	}

	m.stats = stats
	m.results = results
	m.updateTableRows()
}

func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		winner := r.WinnerName()
		if r.Tie() {
			winner = "tie"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			winner,
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%dx%d", r.Rows, r.Cols),
			r.Duration.Round(time.Second).String(),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats view.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats view.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("CONNECT FOUR RESULTS"))
	b.WriteString("\n\n")

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else {
		b.WriteString(SummaryLine(m.stats))
		b.WriteString("\n\n")
		b.WriteString(m.renderTableContent())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m StatsModel) renderTableContent() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.results) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		return boxStyle.Render(emptyStyle.Render("No games recorded yet.\nFinish a game to see it here!"))
	}

	return boxStyle.Render(m.table.View())
}

// SummaryLine formats aggregate statistics on one line.
func SummaryLine(s storage.Stats) string {
	return fmt.Sprintf("Games: %d   Player 1 wins: %d   Player 2 wins: %d   Ties: %d   Avg moves: %.1f",
		s.Games, s.Player1Wins, s.Player2Wins, s.Ties, s.AvgMoves)
}

// RunStats runs the interactive stats view.
func RunStats(store *storage.Store, gameID string, limit, width, height int) error {
	model := NewStatsModel(store, gameID, limit, width, height)

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
