// Package config loads Connect Four settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-connect4/internal/core"
)

// Board size limits accepted by Validate.
const (
	MinBoardSize = 4
	MaxBoardSize = 16
)

// Config is the full application configuration.
type Config struct {
	Board   BoardConfig    `yaml:"board"`
	Players []PlayerConfig `yaml:"players"`
	UI      UIConfig       `yaml:"ui"`
	Storage StorageConfig  `yaml:"storage"`
	SSH     SSHConfig      `yaml:"ssh"`
}

// BoardConfig sets the grid dimensions. They are fixed for a session.
type BoardConfig struct {
	Rows int `yaml:"rows" env:"CONNECT4_BOARD_ROWS"`
	Cols int `yaml:"cols" env:"CONNECT4_BOARD_COLS"`
}

// PlayerConfig describes how one player is shown.
type PlayerConfig struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Color  string `yaml:"color"`
}

// UIConfig holds terminal front-end settings.
type UIConfig struct {
	TickRate int  `yaml:"tick_rate" env:"CONNECT4_TICK_RATE"`
	ShowHelp bool `yaml:"show_help" env:"CONNECT4_SHOW_HELP"`
	Mouse    bool `yaml:"mouse" env:"CONNECT4_MOUSE"`
}

// StorageConfig locates the results ledger. An empty path disables it.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"CONNECT4_DB"`
}

// SSHConfig configures `connect4 serve`.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"CONNECT4_SSH_ADDR"`
	HostKey     string        `yaml:"host_key" env:"CONNECT4_SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"CONNECT4_SSH_IDLE_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{Rows: 6, Cols: 7},
		Players: []PlayerConfig{
			{Name: "Player 1", Symbol: "X", Color: "bright_red"},
			{Name: "Player 2", Symbol: "O", Color: "bright_yellow"},
		},
		UI: UIConfig{
			TickRate: 30,
			ShowHelp: true,
			Mouse:    true,
		},
		Storage: StorageConfig{DBPath: "~/.connect4/results.db"},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the configuration can start a game.
func (c Config) Validate() error {
	if c.Board.Rows < MinBoardSize || c.Board.Rows > MaxBoardSize {
		return fmt.Errorf("%w: board.rows must be between %d and %d, got %d",
			ErrInvalid, MinBoardSize, MaxBoardSize, c.Board.Rows)
	}
	if c.Board.Cols < MinBoardSize || c.Board.Cols > MaxBoardSize {
		return fmt.Errorf("%w: board.cols must be between %d and %d, got %d",
			ErrInvalid, MinBoardSize, MaxBoardSize, c.Board.Cols)
	}

	if len(c.Players) != 2 {
		return fmt.Errorf("%w: need exactly 2 players, got %d", ErrInvalid, len(c.Players))
	}
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("%w: players[%d].name is empty", ErrInvalid, i)
		}
		if utf8.RuneCountInString(p.Symbol) != 1 {
			return fmt.Errorf("%w: players[%d].symbol must be a single character, got %q", ErrInvalid, i, p.Symbol)
		}
		if _, ok := core.ParseColor(p.Color); !ok {
			return fmt.Errorf("%w: players[%d].color %q is unknown", ErrInvalid, i, p.Color)
		}
	}
	if c.Players[0].Symbol == c.Players[1].Symbol {
		return fmt.Errorf("%w: players share the symbol %q", ErrInvalid, c.Players[0].Symbol)
	}

	if c.UI.TickRate < 1 || c.UI.TickRate > 120 {
		return fmt.Errorf("%w: ui.tick_rate must be between 1 and 120, got %d", ErrInvalid, c.UI.TickRate)
	}
	return nil
}

// Rune returns the symbol as a rune. Only meaningful after Validate.
func (p PlayerConfig) Rune() rune {
	r, _ := utf8.DecodeRuneInString(p.Symbol)
	return r
}
