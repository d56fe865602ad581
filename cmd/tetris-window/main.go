// tetris-window plays tetris in a desktop window with gamepad support.
//
// Usage:
//
//	tetris-window [--seed N] [--speed slow|normal|fast] [--config path]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/platform/window"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagSpeed   string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris-window",
	Short: "Play tetris in a window",
	Long: `Open a 300x450 window and play tetris with the keyboard or a gamepad.

Keyboard (defaults, change them in tetris.yaml):
  Left/Right - Move
  Down       - Soft drop (hold)
  A          - Rotate counter-clockwise
  Z          - Rotate clockwise

Gamepad (standard layout):
  D-pad left/right - Move
  D-pad down       - Soft drop (hold)
  X / left trigger - Rotate counter-clockwise
  B / right trigger - Rotate clockwise`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "~/.tetris/history.db", "Path to history database")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.Flags().StringVar(&flagSpeed, "speed", "", "Gravity preset: slow, normal, fast")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log to stderr")
}

func run(_ *cobra.Command, _ []string) error {
	logger := log.New(io.Discard)
	if flagVerbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tetris-window",
			Level:           log.DebugLevel,
		})
	}

	cfg, src, err := config.Load(flagConfig, config.SpeedPreset(flagSpeed))
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "source", src)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return window.Run(window.Options{
		Config: cfg,
		Seed:   flagSeed,
		Store:  store,
		Logger: logger,
	})
}
