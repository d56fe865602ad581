package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It mirrors the
// embedded YAML and is used if that fails to parse.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows: 15,
			Cols: 10,
		},
		Timing: TimingConfig{
			NormalIntervalMS:  1000,
			FastIntervalMS:    100,
			PollIntervalMS:    10,
			SoftDropReleaseMS: 550,
		},
		Render: RenderConfig{
			BlockSize: 30,
		},
		Keyboard: KeyboardConfig{
			MoveLeft:  []string{"left"},
			MoveRight: []string{"right"},
			SoftDrop:  []string{"down"},
			RotateCCW: []string{"a"},
			RotateCW:  []string{"z"},
		},
		Gamepad: GamepadConfig{
			MoveLeft:  []int{14},
			MoveRight: []int{15},
			SoftDrop:  []int{13},
			RotateCCW: []int{2, 6},
			RotateCW:  []int{1, 7},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
