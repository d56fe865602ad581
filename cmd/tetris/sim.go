package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/sim"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagSimPieces int
	flagSimRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game with a random bot",
	Long: `Play a game on a virtual clock with a bot that presses random keys,
then print the final board. Runs as fast as the CPU allows.

Examples:
  tetris sim
  tetris sim --pieces 1000 --seed 42
  tetris sim --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimPieces, "pieces", 100, "Stop after this many pieces lock")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save finished games to history")
}

func runSim(cmd *cobra.Command, _ []string) {
	logger, closer := openLogger("tetris-sim")
	defer closer.Close()

	cfg := loadConfig(logger)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if flagSimRecord {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fatal(fmt.Errorf("opening history database: %w", err))
		}
		defer store.Close()
	}

	res, err := sim.Run(cmd.Context(), sim.Options{
		Config: cfg,
		Seed:   seed,
		Pieces: flagSimPieces,
		OnGameOver: func(s tetris.Summary) {
			logger.Info("game over", "pieces", s.Pieces, "rows", s.RowsCleared, "duration", s.Duration())
			if store == nil {
				return
			}
			if _, err := store.SaveSummary(storage.SourceSim, seed, s); err != nil {
				logger.Warn("could not save game", "error", err)
			}
		},
	})
	if err != nil {
		fatal(err)
	}

	rect := tetris.BoardRect(res.Final, 0, 0)
	screen := core.NewScreen(rect.W, rect.H)
	tetris.Render(res.Final, screen)
	fmt.Println(screen.String())
	fmt.Printf("seed %d: %d pieces, %d rows cleared, %d games over, %s simulated\n",
		seed, res.Pieces, res.RowsCleared, res.GamesOver, res.Elapsed)
}
