package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-connect4/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Drop    key.Binding
	Column  key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Drop, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Drop, k.Column},
		{k.Restart, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Drop: key.NewBinding(
			key.WithKeys(" ", "enter", "down", "s"),
			key.WithHelp("space", "drop"),
		),
		Column: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "drop in column"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) KeyMapper {
	return KeyMapper{keys: keys}
}

// Keys returns the bindings, for the help view.
func (km KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action. Digit keys return
// ActionColumn and the zero-based column; every other key returns column -1.
func (km KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, int) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, -1
	case key.Matches(msg, km.keys.Help):
		return core.ActionHelp, -1
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, -1
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft, -1
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight, -1
	case key.Matches(msg, km.keys.Drop):
		return core.ActionDrop, -1
	case key.Matches(msg, km.keys.Column):
		return core.ActionColumn, int(msg.String()[0] - '1')
	}
	return core.ActionNone, -1
}

// MapKeyToFrame records a key message in frame.
// Returns the action so the caller can handle Quit and Help itself.
func (km KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) core.Action {
	action, col := km.MapKey(msg)
	switch action {
	case core.ActionNone, core.ActionQuit, core.ActionHelp:
		// Not game input.
	case core.ActionColumn:
		frame.PushColumn(col)
	default:
		frame.Push(action)
	}
	return action
}
