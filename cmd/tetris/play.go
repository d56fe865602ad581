package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls (defaults, change them in tetris.yaml):
  Left/Right - Move
  Down       - Soft drop (hold)
  A          - Rotate counter-clockwise
  Z          - Rotate clockwise
  ?          - Toggle help
  Esc        - Leave game (back to menu with --menu)
  Q/Ctrl+C   - Quit

Terminals do not report key releases, so soft drop ends shortly after the
down key stops repeating.

Examples:
  tetris play
  tetris play --speed slow
  tetris play --menu
  tetris play --seed 42 --log ./tetris.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var flagPlayMenu bool

func init() {
	playCmd.Flags().BoolVar(&flagPlayMenu, "menu", false, "Pick a speed from a menu before each game, as SSH players do")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closer := openLogger("tetris")
	defer closer.Close()

	cfg := loadConfig(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Source: storage.SourceTUI,
		Store:  store,
		Logger: logger,
	}

	var runErr error
	if flagPlayMenu {
		runErr = tui.RunSession(opts)
	} else {
		runErr = tui.Run(opts)
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal(fmt.Errorf("running game: %w", runErr))
	}
}
