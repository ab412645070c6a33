// connect4 is a two-player Connect Four game for the terminal.
//
// Usage:
//
//	connect4 play            - Play a hot-seat game
//	connect4 stats           - Show recorded results
//	connect4 serve           - Start SSH server for remote play
//	connect4 list            - List available games
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.connect4 and ./configs)
//	--db <path>         - Results database (default: ~/.connect4/results.db)
//	--fps <rate>        - Tick rate
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/config"
	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagFPS      int
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "connect4",
	Short: "Connect Four - drop pieces, line up four",
	Long: `Connect Four for two players sharing one terminal.

Players take turns dropping pieces into a column; the piece falls to the
lowest empty cell. Four in a row horizontally, vertically or diagonally wins.

Available commands:
  play     - Play a hot-seat game
  stats    - View recorded results
  serve    - Start SSH server for remote play
  list     - Show all available games

Examples:
  connect4 play
  connect4 play --config ./big-board.yaml
  connect4 stats --interactive
  connect4 serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("fps") {
		cfg.UI.TickRate = flagFPS
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// gameOptions converts validated config into game options.
func gameOptions(cfg config.Config) connect4.Options {
	opts := connect4.Options{
		Rows: cfg.Board.Rows,
		Cols: cfg.Board.Cols,
	}
	for i, p := range cfg.Players[:2] {
		color, _ := core.ParseColor(p.Color)
		opts.Players[i] = connect4.PlayerStyle{
			Name:   p.Name,
			Symbol: p.Rune(),
			Color:  color,
		}
	}
	return opts
}

// newLogger builds the logger. Output goes to the --log-file if set,
// otherwise to fallback. The returned func closes the log file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the results ledger. An empty path disables it.
func openStore(path string) (*storage.Store, error) {
	if path == "" {
		return nil, nil
	}
	return storage.Open(path)
}
