package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestSession() SessionModel {
	return NewSessionModel(Options{
		Config:  config.DefaultTetrisConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 5},
	})
}

func update(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", next)
	}
	return s, cmd
}

func TestSessionStartsAtMenu(t *testing.T) {
	m := newTestSession()

	if m.game != nil {
		t.Fatal("session should start without a game")
	}
	view := m.View()
	if !strings.Contains(view, "Select a speed") {
		t.Errorf("View() should show the menu, got:\n%s", view)
	}
}

func TestSessionMenuSelectsPreset(t *testing.T) {
	m := newTestSession()

	// Cursor starts on Normal; move to Fast
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.game == nil {
		t.Fatal("enter should start a game")
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if got := m.game.Game().Config().NormalInterval; got != 500*time.Millisecond {
		t.Errorf("NormalInterval = %v, expected 500ms for fast preset", got)
	}
}

func TestSessionBackToMenu(t *testing.T) {
	m := newTestSession()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil {
		t.Fatal("enter should start a game")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.game != nil {
		t.Fatal("esc should return to the menu")
	}
	if m.quitting {
		t.Error("esc should not end the session")
	}

	// A tick left over from the finished game is dropped
	_, cmd := update(t, m, TickMsg(time.Now()))
	if cmd != nil {
		t.Error("stale tick should not restart the tick loop")
	}
}

func TestSessionQuitFromGame(t *testing.T) {
	m := newTestSession()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := update(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in game should quit the session")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestSessionPresetConflictKeepsConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Timing.FastIntervalMS = 800
	cfg.Timing.NormalIntervalMS = 3000
	m := NewSessionModel(Options{Config: cfg, Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24}})

	// Fast preset (500ms) would be quicker than soft drop
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.game.Game().Config().NormalInterval; got != 3*time.Second {
		t.Errorf("NormalInterval = %v, expected config's 3s", got)
	}
}
