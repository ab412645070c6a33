package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
	"github.com/vovakirdan/tui-connect4/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a hot-seat game",
	Long: `Start a two-player game in this terminal.

Controls:
  Left/Right, H/L, A/D - Move the column cursor
  Space/Enter/Down     - Drop a piece
  1-9                  - Drop straight into that column
  Mouse click          - Drop into the clicked column
  R                    - Restart
  ?                    - Toggle help
  Q/Ctrl+C             - Quit

Examples:
  connect4 play
  connect4 play --config ./big-board.yaml
  connect4 play --log-file connect4.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fatal("%v", err)
	}

	// The alt screen owns stdout, so logs are dropped unless --log-file is set.
	logger, closeLog, err := newLogger(io.Discard, "connect4")
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	connect4.SetOptions(gameOptions(cfg))
	game, err := registry.Create(connect4.GameID)
	if err != nil {
		fatal("creating game: %v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := openStore(cfg.Storage.DBPath)
	if err != nil {
		// Continue without storage - game still works
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	runErr := tui.Run(game, tui.Options{
		Store:    store,
		Logger:   logger,
		ShowHelp: cfg.UI.ShowHelp,
		Mouse:    cfg.UI.Mouse,
	}, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.UI.TickRate,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fatal("running game: %v", runErr)
	}
}
