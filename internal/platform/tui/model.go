package tui

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/input"
	"github.com/vovakirdan/tui-tetris/internal/loop"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Options configures a play session.
type Options struct {
	Config  config.TetrisConfig
	Runtime core.RuntimeConfig
	Source  string         // history tag, e.g. storage.SourceTUI
	Store   *storage.Store // nil disables history
	Logger  *log.Logger    // nil discards
}

// Model is the Bubble Tea model for one game of tetris.
type Model struct {
	opts   Options
	logger *log.Logger

	game  *tetris.Game
	mux   *input.Multiplexer
	hold  *input.HoldTracker
	sched *loop.Scheduler

	keys   KeyMap
	help   help.Model
	screen *core.Screen
	width  int
	height int

	notice   *tetris.Summary // pending game-over notice
	now      func() time.Time
	quitting bool
	back     bool
}

// NewModel creates a model with a fresh game.
func NewModel(opts Options) *Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Source == "" {
		opts.Source = storage.SourceTUI
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		opts:   opts,
		logger: logger,
		hold:   input.NewHoldTracker(opts.Config.SoftDropRelease()),
		sched:  loop.New(),
		keys:   NewKeyMap(opts.Config.Keyboard),
		help:   help.New(),
		now:    time.Now,
	}

	rng := rand.New(rand.NewSource(opts.Runtime.Seed))
	m.game = tetris.New(opts.Config.Game(), rng, m.now())
	m.game.OnGameOver(m.handleGameOver)
	m.mux = input.NewMultiplexer(m.game, input.NewKeyboard(opts.Config.KeyBindings()), nil)

	m.sched.Every(opts.Config.PollInterval(), m.poll)
	m.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	return m
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("game started", "seed", m.opts.Runtime.Seed, "source", m.opts.Source)
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.handleTick(time.Time(msg))
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input. Terminals only report presses, so a
// soft-drop key is registered with the hold tracker and released once its
// auto-repeat stops.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case m.notice != nil:
		m.notice = nil
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	k := msg.String()
	if m.mux.KeyDown(k) == core.IntentSoftDropOn {
		m.hold.Press(k, m.now())
	}
	return m, nil
}

// handleTick releases expired keys and runs due tasks. The drop timer is
// not polled while the game-over notice is up.
func (m *Model) handleTick(now time.Time) {
	for _, k := range m.hold.Expired(now) {
		m.mux.KeyUp(k)
	}
	if m.notice != nil {
		return
	}
	m.sched.RunDue(now)
}

func (m *Model) poll(now time.Time) {
	res, dropped := m.game.Tick(now)
	if dropped && res.RowsCleared > 0 {
		m.logger.Debug("rows cleared", "rows", res.RowsCleared)
	}
}

func (m *Model) handleGameOver(s tetris.Summary) {
	m.notice = &s
	m.logger.Info("game over",
		"pieces", s.Pieces,
		"rows", s.RowsCleared,
		"duration", s.Duration().Round(time.Millisecond),
	)

	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveSummary(m.opts.Source, m.opts.Runtime.Seed, s)
	if err != nil {
		m.logger.Warn("could not save game", "error", err)
	}
}

// resize keeps one line below the board for help.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	boardH := max(h-1, 1)
	if m.screen == nil {
		m.screen = core.NewScreen(w, boardH)
	} else {
		m.screen.Resize(w, boardH)
	}
	m.help.Width = w
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	if m.notice != nil {
		return RenderGameOver(*m.notice, m.width, m.height)
	}

	m.screen.Clear()
	tetris.Render(m.game.Snapshot(), m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// BackToMenu returns true if the player left the game with esc.
func (m *Model) BackToMenu() bool {
	return m.back
}

// IsQuitting returns true if the player asked to quit entirely.
func (m *Model) IsQuitting() bool {
	return m.quitting
}

// Game returns the running game.
func (m *Model) Game() *tetris.Game {
	return m.game
}

// Run starts the Bubble Tea program in the alternate screen.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
