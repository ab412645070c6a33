package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded results",
	Long: `Display win and tie totals and the most recent finished games.

Examples:
  connect4 stats
  connect4 stats --limit 25
  connect4 stats --interactive
  connect4 stats --clear`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent games to show")
	statsCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse results in a table view")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded results")
}

func runStats(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fatal("%v", err)
	}
	if cfg.Storage.DBPath == "" {
		fatal("no results database configured")
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fatal("opening results database: %v", err)
	}
	defer store.Close()

	if flagClear {
		n, clearErr := store.ClearResults(connect4.GameID)
		if clearErr != nil {
			store.Close()
			fatal("clearing results: %v", clearErr)
		}
		fmt.Printf("Deleted %d results.\n", n)
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if runErr := tui.RunStats(store, connect4.GameID, flagLimit, width, height); runErr != nil {
			store.Close()
			fatal("%v", runErr)
		}
		return
	}

	stats, err := store.Stats(connect4.GameID)
	if err != nil {
		store.Close()
		fatal("retrieving stats: %v", err)
	}
	results, err := store.RecentResults(connect4.GameID, flagLimit)
	if err != nil {
		store.Close()
		fatal("retrieving results: %v", err)
	}

	printStats(os.Stdout, stats, results)
}

func printStats(w io.Writer, stats storage.Stats, results []storage.Result) {
	fmt.Fprintln(w, "Results - Connect Four")
	fmt.Fprintln(w)

	if stats.Games == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'connect4 play' and finish a game to see it here!")
		return
	}

	fmt.Fprintln(w, tui.SummaryLine(stats))
	fmt.Fprintf(w, "Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-3s  %-16s  %-5s  %-5s  %s\n", "#", "Winner", "Moves", "Board", "Date")
	fmt.Fprintf(w, "  %-3s  %-16s  %-5s  %-5s  %s\n", "-", "------", "-----", "-----", "----")
	for i, r := range results {
		winner := r.WinnerName()
		if r.Tie() {
			winner = "tie"
		}
		board := fmt.Sprintf("%dx%d", r.Rows, r.Cols)
		dateStr := r.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-3d  %-16s  %-5d  %-5s  %s\n", i+1, winner, r.Moves, board, dateStr)
	}
}
