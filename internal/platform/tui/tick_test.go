package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
)

func TestTickInterval(t *testing.T) {
	tests := []struct {
		name string
		rate int
		want time.Duration
	}{
		{"default rate", 30, time.Second / 30},
		{"zero uses default", 0, time.Second / 30},
		{"negative uses default", -5, time.Second / 30},
		{"one per second", 1, time.Second},
		{"clamped high", 1000, time.Second / 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tickInterval(tt.rate))
		})
	}
}

func TestTickCmd(t *testing.T) {
	cmd := tickCmd(120)

	assert.NotNil(t, cmd)
	assert.IsType(t, TickMsg{}, cmd())
}

func TestNewModel_NormalizesTickRate(t *testing.T) {
	for rate, want := range map[int]int{0: 30, 10: 10, 500: 120} {
		game := connect4.New(connect4.DefaultOptions())
		m := NewModel(game, Options{}, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: rate})
		assert.Equal(t, want, m.config.TickRate, "rate %d", rate)
	}
}
