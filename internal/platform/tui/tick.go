// Package tui runs games in a terminal with Bubble Tea, locally or over SSH.
// It maps keys and mouse clicks to game input, drives the tick loop,
// renders core.Screen buffers with lipgloss and records finished games.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-connect4/internal/core"
)

// Tick rate bounds, in ticks per second.
const (
	minTickRate = 1
	maxTickRate = 120
)

// TickMsg is the game clock. Each tick applies the input queued since the
// previous one and lets timed status messages expire.
type TickMsg time.Time

// tickInterval converts a tick rate to the delay between ticks. Rates
// outside [minTickRate, maxTickRate] are clamped; zero or less means the
// default rate.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	tickRate = core.Clamp(tickRate, minTickRate, maxTickRate)
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next tick.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
