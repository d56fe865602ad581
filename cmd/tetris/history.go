package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished games",
	Long: `Display recently finished games and overall totals.

In a terminal this opens a scrollable table; tab switches between sources
(tui, ssh, window, sim). When output is piped a plain table is printed.

Examples:
  tetris history
  tetris history --limit 5 | cat
  tetris history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Games to print when output is not a terminal")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded games")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal(fmt.Errorf("opening history database: %w", err))
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearHistory(); err != nil {
			fatal(err)
		}
		fmt.Println("History cleared.")
		return
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := tui.RunHistory(store, w, h); err != nil {
			fatal(err)
		}
		return
	}

	games, err := store.RecentGames(flagHistoryLimit)
	if err != nil {
		fatal(err)
	}
	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' and finish a game to see it here!")
		return
	}
	totals, err := store.Totals()
	if err != nil {
		fatal(err)
	}
	fmt.Println(tui.HistoryTable(games, totals))
}
