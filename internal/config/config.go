// Package config provides YAML-based game configuration loading with
// embedded defaults and speed presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/input"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// TetrisConfig contains all configuration for the game and its frontends.
type TetrisConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Timing   TimingConfig   `yaml:"timing"`
	Render   RenderConfig   `yaml:"render"`
	Keyboard KeyboardConfig `yaml:"keyboard"`
	Gamepad  GamepadConfig  `yaml:"gamepad"`
}

// BoardConfig defines the grid size.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// TimingConfig defines gravity and polling intervals in milliseconds.
type TimingConfig struct {
	NormalIntervalMS  int `yaml:"normal_interval_ms"`
	FastIntervalMS    int `yaml:"fast_interval_ms"`
	PollIntervalMS    int `yaml:"poll_interval_ms"`
	SoftDropReleaseMS int `yaml:"soft_drop_release_ms"`
}

// RenderConfig defines window frontend dimensions.
type RenderConfig struct {
	BlockSize int `yaml:"block_size"`
}

// KeyboardConfig binds key names to intents.
type KeyboardConfig struct {
	MoveLeft  []string `yaml:"move_left"`
	MoveRight []string `yaml:"move_right"`
	SoftDrop  []string `yaml:"soft_drop"`
	RotateCCW []string `yaml:"rotate_ccw"`
	RotateCW  []string `yaml:"rotate_cw"`
}

// GamepadConfig binds standard-layout button indices to intents.
type GamepadConfig struct {
	MoveLeft  []int `yaml:"move_left"`
	MoveRight []int `yaml:"move_right"`
	SoftDrop  []int `yaml:"soft_drop"`
	RotateCCW []int `yaml:"rotate_ccw"`
	RotateCW  []int `yaml:"rotate_cw"`
}

// maxPollIntervalMS keeps the window frontend at one update per second or more.
const maxPollIntervalMS = 1000

// Validate checks that the configuration describes a playable game.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Rows < 4 || c.Board.Cols < 4:
		return fmt.Errorf("%w: board must be at least 4x4, got %dx%d", ErrInvalidConfig, c.Board.Rows, c.Board.Cols)
	case c.Timing.FastIntervalMS <= 0 || c.Timing.NormalIntervalMS <= 0:
		return fmt.Errorf("%w: drop intervals must be positive", ErrInvalidConfig)
	case c.Timing.FastIntervalMS >= c.Timing.NormalIntervalMS:
		return fmt.Errorf("%w: fast interval %dms must be shorter than normal interval %dms",
			ErrInvalidConfig, c.Timing.FastIntervalMS, c.Timing.NormalIntervalMS)
	case c.Timing.PollIntervalMS <= 0:
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidConfig)
	case c.Timing.PollIntervalMS > maxPollIntervalMS:
		return fmt.Errorf("%w: poll interval %dms exceeds %dms", ErrInvalidConfig, c.Timing.PollIntervalMS, maxPollIntervalMS)
	case c.Timing.SoftDropReleaseMS <= 0:
		return fmt.Errorf("%w: soft drop release timeout must be positive", ErrInvalidConfig)
	case c.Render.BlockSize <= 0:
		return fmt.Errorf("%w: block size must be positive", ErrInvalidConfig)
	}

	keys := map[string][]string{
		"move_left":  c.Keyboard.MoveLeft,
		"move_right": c.Keyboard.MoveRight,
		"soft_drop":  c.Keyboard.SoftDrop,
		"rotate_ccw": c.Keyboard.RotateCCW,
		"rotate_cw":  c.Keyboard.RotateCW,
	}
	for name, bound := range keys {
		if len(bound) == 0 {
			return fmt.Errorf("%w: keyboard.%s has no keys", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Game returns the engine configuration.
func (c TetrisConfig) Game() tetris.Config {
	return tetris.Config{
		Rows:           c.Board.Rows,
		Cols:           c.Board.Cols,
		NormalInterval: ms(c.Timing.NormalIntervalMS),
		FastInterval:   ms(c.Timing.FastIntervalMS),
	}
}

// PollInterval returns how often the drop timer should be checked.
func (c TetrisConfig) PollInterval() time.Duration {
	return ms(c.Timing.PollIntervalMS)
}

// SoftDropRelease returns the terminal key-release timeout.
func (c TetrisConfig) SoftDropRelease() time.Duration {
	return ms(c.Timing.SoftDropReleaseMS)
}

// KeyBindings returns the keyboard bindings for the input multiplexer.
func (c TetrisConfig) KeyBindings() input.Bindings[string] {
	return input.Bindings[string]{
		MoveLeft:  c.Keyboard.MoveLeft,
		MoveRight: c.Keyboard.MoveRight,
		SoftDrop:  c.Keyboard.SoftDrop,
		RotateCW:  c.Keyboard.RotateCW,
		RotateCCW: c.Keyboard.RotateCCW,
	}
}

// ButtonBindings returns the gamepad bindings for the input multiplexer.
func (c TetrisConfig) ButtonBindings() input.Bindings[int] {
	return input.Bindings[int]{
		MoveLeft:  c.Gamepad.MoveLeft,
		MoveRight: c.Gamepad.MoveRight,
		SoftDrop:  c.Gamepad.SoftDrop,
		RotateCW:  c.Gamepad.RotateCW,
		RotateCCW: c.Gamepad.RotateCCW,
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// SpeedPreset names a normal gravity interval.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// ApplySpeedPreset overrides the normal interval. The soft-drop interval is
// left alone. An empty preset keeps the config as loaded.
func ApplySpeedPreset(cfg *TetrisConfig, preset SpeedPreset) error {
	switch preset {
	case "":
		return nil
	case SpeedSlow:
		cfg.Timing.NormalIntervalMS = 1500
	case SpeedNormal:
		cfg.Timing.NormalIntervalMS = 1000
	case SpeedFast:
		cfg.Timing.NormalIntervalMS = 500
	default:
		return fmt.Errorf("%w: unknown speed preset %q (want slow, normal or fast)", ErrInvalidConfig, preset)
	}
	return nil
}
