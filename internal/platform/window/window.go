// Package window runs tetris in a desktop window with Ebitengine. Unlike
// terminals it receives real key-up events and can poll gamepads.
package window

import (
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/input"
	"github.com/vovakirdan/tui-tetris/internal/loop"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Options configures the window frontend.
type Options struct {
	Config config.TetrisConfig
	Seed   int64          // 0 = time based
	Store  *storage.Store // nil disables history
	Logger *log.Logger    // nil discards
}

var (
	backgroundColor = colornames.Black
	gridColor       = color.RGBA{0x1e, 0x1e, 0x2c, 0xff}
	strokeColor     = colornames.Black
	overlayColor    = color.RGBA{0, 0, 0, 0xa0}
)

// keyAliases maps the terminal key names used in the config to Ebitengine
// key names.
var keyAliases = map[string]string{
	"left":  "arrowleft",
	"right": "arrowright",
	"up":    "arrowup",
	"down":  "arrowdown",
	" ":     "space",
}

// Game implements ebiten.Game around one tetris game.
type Game struct {
	opts      Options
	logger    *log.Logger
	blockSize int

	game  *tetris.Game
	mux   *input.Multiplexer
	sched *loop.Scheduler

	keys    map[ebiten.Key]string
	pads    []ebiten.GamepadID
	buttons []int

	notice *tetris.Summary
}

// NewGame creates a window game. Config keys that Ebitengine does not know
// are reported as an error.
func NewGame(opts Options) (*Game, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys, err := bindKeys(opts.Config.Keyboard)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:      opts,
		logger:    logger,
		blockSize: opts.Config.Render.BlockSize,
		sched:     loop.New(),
		keys:      keys,
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g.game = tetris.New(opts.Config.Game(), rng, time.Now())
	g.game.OnGameOver(g.handleGameOver)
	g.mux = input.NewMultiplexer(
		g.game,
		input.NewKeyboard(opts.Config.KeyBindings()),
		input.NewGamepad(opts.Config.ButtonBindings()),
	)
	g.sched.Every(opts.Config.PollInterval(), func(now time.Time) {
		g.game.Tick(now)
	})
	return g, nil
}

// bindKeys resolves every configured key name to an Ebitengine key.
func bindKeys(kb config.KeyboardConfig) (map[ebiten.Key]string, error) {
	known := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		known[strings.ToLower(k.String())] = k
	}

	out := make(map[ebiten.Key]string)
	groups := [][]string{kb.MoveLeft, kb.MoveRight, kb.SoftDrop, kb.RotateCCW, kb.RotateCW}
	for _, names := range groups {
		for _, name := range names {
			lookup := strings.ToLower(name)
			if alias, ok := keyAliases[lookup]; ok {
				lookup = alias
			}
			k, ok := known[lookup]
			if !ok {
				return nil, fmt.Errorf("window: unknown key %q", name)
			}
			out[k] = name
		}
	}
	return out, nil
}

// Update runs once per frame: gamepad hot-plug, key edges, the gamepad
// poll and finally the drop timer.
func (g *Game) Update() error {
	g.updatePads()

	for k, name := range g.keys {
		if inpututil.IsKeyJustReleased(k) {
			g.mux.KeyUp(name)
		}
	}

	if g.notice != nil {
		if g.acknowledged() {
			g.notice = nil
		}
		return nil
	}

	for k, name := range g.keys {
		if inpututil.IsKeyJustPressed(k) {
			g.mux.KeyDown(name)
		}
	}
	if g.mux.GamepadConnected() {
		g.mux.PollGamepad(g.pressedButtons())
	}

	g.sched.RunDue(time.Now())
	return nil
}

func (g *Game) updatePads() {
	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		g.logger.Info("gamepad connected", "id", id, "name", ebiten.GamepadName(id))
		g.pads = append(g.pads, id)
	}
	g.pads = slices.DeleteFunc(g.pads, func(id ebiten.GamepadID) bool {
		if inpututil.IsGamepadJustDisconnected(id) {
			g.logger.Info("gamepad disconnected", "id", id)
			return true
		}
		return false
	})
	g.mux.SetGamepadConnected(len(g.pads) > 0)
}

// pressedButtons returns the W3C standard-layout indices held on the
// first connected gamepad. Pads without a standard mapping report raw
// button indices.
func (g *Game) pressedButtons() []int {
	g.buttons = g.buttons[:0]
	id := g.pads[0]
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
			if ebiten.IsStandardGamepadButtonPressed(id, b) {
				g.buttons = append(g.buttons, int(b))
			}
		}
		return g.buttons
	}
	for b := range ebiten.GamepadButtonCount(id) {
		if ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton(b)) {
			g.buttons = append(g.buttons, b)
		}
	}
	return g.buttons
}

// acknowledged reports whether any key or gamepad button went down this frame.
func (g *Game) acknowledged() bool {
	if len(inpututil.AppendJustPressedKeys(nil)) > 0 {
		return true
	}
	for _, id := range g.pads {
		if len(inpututil.AppendJustPressedGamepadButtons(id, nil)) > 0 {
			return true
		}
	}
	return false
}

func (g *Game) handleGameOver(s tetris.Summary) {
	g.notice = &s
	g.logger.Info("game over",
		"pieces", s.Pieces,
		"rows", s.RowsCleared,
		"duration", s.Duration().Round(time.Millisecond),
	)
	if g.opts.Store == nil {
		return
	}
	if _, err := g.opts.Store.SaveSummary(storage.SourceWindow, g.opts.Seed, s); err != nil {
		g.logger.Warn("could not save game", "error", err)
	}
}

// Draw renders the board and active piece. Each occupied cell is a filled
// square with a one pixel outline.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := g.game.Snapshot()
	bs := float32(g.blockSize)
	for y := range snap.Rows {
		for x := range snap.Cols {
			px, py := float32(x)*bs, float32(y)*bs
			c := snap.Cell(x, y)
			if c == tetris.Empty {
				vector.StrokeRect(screen, px, py, bs, bs, 1, gridColor, false)
				continue
			}
			vector.DrawFilledRect(screen, px, py, bs, bs, c.RGBA(), false)
			vector.StrokeRect(screen, px, py, bs, bs, 1, strokeColor, false)
		}
	}

	if g.notice != nil {
		g.drawNotice(screen, *g.notice)
	}
}

func (g *Game) drawNotice(screen *ebiten.Image, s tetris.Summary) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlayColor, false)

	lines := []string{
		"GAME OVER",
		fmt.Sprintf("%d pieces, %d rows", s.Pieces, s.RowsCleared),
		"press any key",
	}
	face := basicfont.Face7x13
	for i, line := range lines {
		x := (w - len(line)*face.Advance) / 2
		y := h/2 - 20 + i*20
		text.Draw(screen, line, face, x, y, colornames.White)
	}
}

// Layout returns the fixed canvas size.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.game.Config()
	return cfg.Cols * g.blockSize, cfg.Rows * g.blockSize
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Tetris")
	ebiten.SetTPS(max(1, int(time.Second/opts.Config.PollInterval())))

	return ebiten.RunGame(g)
}
