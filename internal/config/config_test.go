package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedMatchesBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, DefaultTetrisConfig())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("timing:\n  normal_interval_ms: 800\nkeyboard:\n  rotate_cw: [\"x\", \"up\"]\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Timing.NormalIntervalMS != 800 {
		t.Errorf("NormalIntervalMS = %d, expected 800", cfg.Timing.NormalIntervalMS)
	}
	if cfg.Timing.FastIntervalMS != 100 {
		t.Errorf("FastIntervalMS = %d, expected default 100", cfg.Timing.FastIntervalMS)
	}
	if !reflect.DeepEqual(cfg.Keyboard.RotateCW, []string{"x", "up"}) {
		t.Errorf("RotateCW = %v, expected [x up]", cfg.Keyboard.RotateCW)
	}
	if cfg.Board.Rows != 15 || cfg.Board.Cols != 10 {
		t.Errorf("Board = %+v, expected defaults", cfg.Board)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
	}{
		{"tiny board", func(c *TetrisConfig) { c.Board.Rows = 3 }},
		{"fast not faster", func(c *TetrisConfig) { c.Timing.FastIntervalMS = 1000 }},
		{"zero interval", func(c *TetrisConfig) { c.Timing.NormalIntervalMS = 0 }},
		{"zero poll", func(c *TetrisConfig) { c.Timing.PollIntervalMS = 0 }},
		{"poll over a second", func(c *TetrisConfig) { c.Timing.PollIntervalMS = 1500 }},
		{"zero release", func(c *TetrisConfig) { c.Timing.SoftDropReleaseMS = 0 }},
		{"zero block", func(c *TetrisConfig) { c.Render.BlockSize = 0 }},
		{"unbound key", func(c *TetrisConfig) { c.Keyboard.SoftDrop = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	if err := DefaultTetrisConfig().Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestGameConfig(t *testing.T) {
	g := DefaultTetrisConfig().Game()

	if g.Rows != 15 || g.Cols != 10 {
		t.Errorf("Game() board = %dx%d, expected 15x10", g.Rows, g.Cols)
	}
	if g.NormalInterval != time.Second {
		t.Errorf("NormalInterval = %v, expected 1s", g.NormalInterval)
	}
	if g.FastInterval != 100*time.Millisecond {
		t.Errorf("FastInterval = %v, expected 100ms", g.FastInterval)
	}
}

func TestBindings(t *testing.T) {
	cfg := DefaultTetrisConfig()

	keys := cfg.KeyBindings()
	if !reflect.DeepEqual(keys.RotateCCW, []string{"a"}) {
		t.Errorf("RotateCCW keys = %v, expected [a]", keys.RotateCCW)
	}
	buttons := cfg.ButtonBindings()
	if !reflect.DeepEqual(buttons.RotateCW, []int{1, 7}) {
		t.Errorf("RotateCW buttons = %v, expected [1 7]", buttons.RotateCW)
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tetris.yaml")
	if err := os.WriteFile(path, []byte("board:\n  rows: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if src != SourceCustom {
		t.Errorf("source = %q, expected %q", src, SourceCustom)
	}
	if cfg.Board.Rows != 20 || cfg.Board.Cols != 10 {
		t.Errorf("Board = %+v, expected 20x10", cfg.Board)
	}
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("timing:\n  fast_interval_ms: 5000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, _, err := LoadTetris(bad)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadTetris(bad) = %v, expected ErrInvalidConfig", err)
	}
}

func TestApplySpeedPreset(t *testing.T) {
	tests := []struct {
		preset   SpeedPreset
		expected int
	}{
		{"", 1000},
		{SpeedSlow, 1500},
		{SpeedNormal, 1000},
		{SpeedFast, 500},
	}

	for _, tc := range tests {
		cfg := DefaultTetrisConfig()
		if err := ApplySpeedPreset(&cfg, tc.preset); err != nil {
			t.Fatalf("ApplySpeedPreset(%q) failed: %v", tc.preset, err)
		}
		if cfg.Timing.NormalIntervalMS != tc.expected {
			t.Errorf("preset %q: NormalIntervalMS = %d, expected %d", tc.preset, cfg.Timing.NormalIntervalMS, tc.expected)
		}
	}

	cfg := DefaultTetrisConfig()
	if err := ApplySpeedPreset(&cfg, "ludicrous"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown preset error = %v, expected ErrInvalidConfig", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultTetrisConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("round trip changed config: %+v", cfg)
	}
}

func TestLoadWithPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tetris.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  fast_interval_ms: 600\n  normal_interval_ms: 2000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path, SpeedSlow)
	if err != nil {
		t.Fatalf("Load(slow) failed: %v", err)
	}
	if cfg.Timing.NormalIntervalMS != 1500 {
		t.Errorf("NormalIntervalMS = %d, expected 1500", cfg.Timing.NormalIntervalMS)
	}

	// fast preset would make gravity quicker than soft drop
	if _, _, err := Load(path, SpeedFast); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load(fast) = %v, expected ErrInvalidConfig", err)
	}
}
