package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration tetris would play with as YAML.

Config search order:
  1. --config <path>
  2. ~/.tetris/configs/tetris.yaml
  3. ./configs/tetris.yaml
  4. built-in defaults

Examples:
  tetris config
  tetris config --speed fast
  tetris config --default > ~/.tetris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default file with comments")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, src, err := config.Load(flagConfig, config.SpeedPreset(flagSpeed))
	if err != nil {
		fatal(err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("# source: %s\n", src)
	os.Stdout.Write(data)
}
