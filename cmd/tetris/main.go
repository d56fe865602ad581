// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play             - Play in this terminal
//	tetris serve            - Start SSH server for remote play
//	tetris history          - Show finished games
//	tetris sim              - Run a headless game with a random bot
//	tetris config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 100)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.tetris/history.db)
//	--config <path>   - Use a specific config file
//	--speed <preset>  - Gravity preset: slow, normal, fast
//	--log <path>      - Write logs to a file
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagSpeed   string
	flagLogPath string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris drops one piece at a time onto a 10x15 board. Full rows
are cleared; when a new piece has no room the board resets.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  history  - Show finished games
  sim      - Run a headless game with a random bot
  config   - Print the effective configuration

Examples:
  tetris play
  tetris play --speed fast
  tetris serve --ssh :2222
  tetris sim --pieces 500 --seed 42
  tetris config > ~/.tetris/configs/tetris.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 100, "Tick rate (drop timer polls per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Gravity preset: slow, normal, fast")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the config file and speed preset from global flags.
func loadConfig(logger *log.Logger) config.TetrisConfig {
	cfg, src, err := config.Load(flagConfig, config.SpeedPreset(flagSpeed))
	if err != nil {
		fatal(err)
	}
	logger.Debug("config loaded", "source", src)
	return cfg
}

// openLogger writes to --log when given and discards otherwise. The
// terminal itself is owned by the game screen.
func openLogger(prefix string) (*log.Logger, io.Closer) {
	if flagLogPath == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fatal(fmt.Errorf("cannot open log file: %w", err))
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger, f
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
