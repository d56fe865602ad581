package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (*Model, *time.Time) {
	t.Helper()
	m := NewModel(Options{
		Config:  config.DefaultTetrisConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7},
	})
	now := start
	m.now = func() time.Time { return now }
	return m, &now
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelMoveKeys(t *testing.T) {
	m, _ := newTestModel(t)
	x := m.Game().Piece().X

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.Game().Piece().X; got != x-1 {
		t.Errorf("after left X = %d, expected %d", got, x-1)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Game().Piece().X; got != x+1 {
		t.Errorf("after right twice X = %d, expected %d", got, x+1)
	}
}

func TestModelSoftDropReleasedAfterRepeatStops(t *testing.T) {
	m, now := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !m.Game().SoftDrop() {
		t.Fatal("soft drop should be on after down key")
	}

	// Auto-repeat keeps it held
	*now = start.Add(300 * time.Millisecond)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(TickMsg(start.Add(600 * time.Millisecond)))
	if !m.Game().SoftDrop() {
		t.Error("soft drop released while key was still repeating")
	}

	m.Update(TickMsg(start.Add(900 * time.Millisecond)))
	if m.Game().SoftDrop() {
		t.Error("soft drop should be released once repeats stop")
	}
}

func TestModelGameOverNotice(t *testing.T) {
	m, _ := newTestModel(t)

	m.handleGameOver(tetris.Summary{Pieces: 12, RowsCleared: 3, StartedAt: start, EndedAt: start.Add(time.Minute)})

	view := m.View()
	if !strings.Contains(view, "GAME OVER") {
		t.Errorf("View() should show the game-over notice, got:\n%s", view)
	}
	if !strings.Contains(view, "12 pieces, 3 rows") {
		t.Errorf("View() should show the summary, got:\n%s", view)
	}

	// Drops are paused while the notice is up
	y := m.Game().Piece().Y
	m.Update(TickMsg(time.Now().Add(10 * time.Second)))
	if got := m.Game().Piece().Y; got != y {
		t.Errorf("piece fell from %d to %d behind the notice", y, got)
	}

	// Any key acknowledges without acting
	x := m.Game().Piece().X
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.notice != nil {
		t.Error("notice should be dismissed by a key press")
	}
	if got := m.Game().Piece().X; got != x {
		t.Errorf("acknowledging key moved the piece from %d to %d", x, got)
	}
}

func TestModelSavesHistory(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/history.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := NewModel(Options{
		Config:  config.DefaultTetrisConfig(),
		Runtime: core.RuntimeConfig{Seed: 99},
		Source:  storage.SourceSSH,
		Store:   store,
	})
	m.handleGameOver(tetris.Summary{Pieces: 5, RowsCleared: 1, StartedAt: start, EndedAt: start.Add(2 * time.Second)})

	games, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 saved game, got %d", len(games))
	}
	g := games[0]
	if g.Source != storage.SourceSSH || g.Seed != 99 || g.Pieces != 5 || g.RowsCleared != 1 {
		t.Errorf("unexpected record: %+v", g)
	}
	if g.Duration != 2*time.Second {
		t.Errorf("Duration = %v, expected 2s", g.Duration)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelViewDrawsBoard(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "┌") {
		t.Errorf("View() should draw the board frame, got:\n%s", view)
	}
	if !strings.Contains(view, "[]") {
		t.Errorf("View() should draw the active piece, got:\n%s", view)
	}
}

func TestKeyMapFromConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Keyboard.RotateCW = []string{"x", "up"}
	km := NewKeyMap(cfg.Keyboard)

	tests := []struct {
		msg     tea.KeyMsg
		binding key.Binding
		name    string
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, km.Left, "left"},
		{tea.KeyMsg{Type: tea.KeyDown}, km.SoftDrop, "down"},
		{runes("a"), km.RotateCCW, "a"},
		{runes("x"), km.RotateCW, "x"},
		{tea.KeyMsg{Type: tea.KeyUp}, km.RotateCW, "up"},
	}
	for _, tc := range tests {
		if !key.Matches(tc.msg, tc.binding) {
			t.Errorf("key %q should match its binding", tc.name)
		}
	}

	if key.Matches(runes("z"), km.RotateCW) {
		t.Error("rebound key z should no longer rotate")
	}
	if got := km.RotateCW.Help().Key; got != "x/↑" {
		t.Errorf("RotateCW help = %q, expected %q", got, "x/↑")
	}
}

func TestHistoryFilter(t *testing.T) {
	records := []storage.GameRecord{
		{ID: 3, Source: storage.SourceTUI, Pieces: 10},
		{ID: 2, Source: storage.SourceSSH, Pieces: 20},
		{ID: 1, Source: storage.SourceTUI, Pieces: 30},
	}
	m := newHistoryModel(records, storage.Totals{Games: 3}, 80, 24)

	if len(m.shown) != 3 {
		t.Fatalf("all filter shows %d games, expected 3", len(m.shown))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if historyFilters[m.filter] != storage.SourceTUI {
		t.Fatalf("filter = %q, expected %q", historyFilters[m.filter], storage.SourceTUI)
	}
	if len(m.shown) != 2 {
		t.Errorf("tui filter shows %d games, expected 2", len(m.shown))
	}
	if len(m.all) != 3 {
		t.Errorf("filtering changed the loaded games: %d", len(m.all))
	}

	prev, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = prev.(HistoryModel)
	if m.filter != 0 {
		t.Errorf("filter = %d after shift+tab, expected 0", m.filter)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{90*time.Minute + 20*time.Second, "1h30m"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.in); got != tc.expected {
			t.Errorf("formatDuration(%v) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
