package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Config holds the board size and the two gravity intervals.
type Config struct {
	Rows           int
	Cols           int
	NormalInterval time.Duration // gravity while soft drop is released
	FastInterval   time.Duration // gravity while soft drop is held
}

// DefaultConfig returns the classic 15×10 board with 1s / 100ms gravity.
func DefaultConfig() Config {
	return Config{
		Rows:           15,
		Cols:           10,
		NormalInterval: 1000 * time.Millisecond,
		FastInterval:   100 * time.Millisecond,
	}
}

// Phase names the step a drop tick went through.
type Phase int

const (
	PhaseFalling Phase = iota
	PhaseLocking
	PhaseLineClear
	PhaseSpawning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseLineClear:
		return "line_clear"
	case PhaseSpawning:
		return "spawning"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// DropResult describes what one drop tick did.
type DropResult struct {
	Phase       Phase   // last phase reached
	Steps       []Phase // every phase passed through, in order
	Locked      bool  // the active piece was merged into the board
	RowsCleared int
	GameOver    bool
}

func (r *DropResult) enter(p Phase) {
	r.Phase = p
	r.Steps = append(r.Steps, p)
}

// Summary describes a finished game, handed to the game-over callback.
type Summary struct {
	Pieces      int // pieces locked
	RowsCleared int
	StartedAt   time.Time
	EndedAt     time.Time
}

// Duration returns how long the game lasted.
func (s Summary) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Game is the state machine. It owns the board, the active piece and the
// gravity timer. It is not safe for concurrent use; frontends serialize
// every call on one goroutine.
type Game struct {
	cfg     Config
	board   *Board
	piece   Piece
	spawner *Spawner

	softDrop bool
	lastDrop time.Time

	startedAt   time.Time
	pieces      int
	rowsCleared int
	gamesOver   int

	onGameOver func(Summary)
}

// New creates a game with an empty board and a freshly spawned piece.
// now anchors the gravity timer.
func New(cfg Config, rng *rand.Rand, now time.Time) *Game {
	g := &Game{
		cfg:     cfg,
		spawner: NewSpawner(rng, cfg.Cols),
	}
	g.Reset(now)
	return g
}

// Reset clears the board, spawns a new piece and restarts the timer.
// Game-over callbacks are kept.
func (g *Game) Reset(now time.Time) {
	g.board = NewBoard(g.cfg.Rows, g.cfg.Cols)
	g.piece = g.spawner.Spawn()
	g.softDrop = false
	g.lastDrop = now
	g.startedAt = now
	g.pieces = 0
	g.rowsCleared = 0
}

// OnGameOver registers fn to run each time a spawned piece does not fit.
// The board has already been reset when fn runs.
func (g *Game) OnGameOver(fn func(Summary)) {
	g.onGameOver = fn
}

// Config returns the game configuration.
func (g *Game) Config() Config { return g.cfg }

// Board returns a copy of the locked cells.
func (g *Game) Board() *Board { return g.board.Clone() }

// Piece returns the active piece.
func (g *Game) Piece() Piece { return g.piece }

// SoftDrop reports whether the fast interval is active.
func (g *Game) SoftDrop() bool { return g.softDrop }

// GamesOver returns how many times the game has ended and restarted.
func (g *Game) GamesOver() int { return g.gamesOver }

// Interval returns the current gravity interval.
func (g *Game) Interval() time.Duration {
	if g.softDrop {
		return g.cfg.FastInterval
	}
	return g.cfg.NormalInterval
}

// Tick is the polling entry point. It may be called far more often than
// drops occur; a drop runs only when at least Interval has passed since the
// previous one. Returns the drop result and whether a drop ran.
func (g *Game) Tick(now time.Time) (DropResult, bool) {
	if now.Sub(g.lastDrop) < g.Interval() {
		return DropResult{}, false
	}
	res := g.Drop(now)
	g.lastDrop = now
	return res, true
}

// Drop runs one gravity step: fall one row if possible, otherwise lock,
// clear rows, spawn, and restart on a blocked spawn.
func (g *Game) Drop(now time.Time) DropResult {
	if IsValidMove(g.piece.Shape, g.piece.X, g.piece.Y+1, g.board) {
		g.piece.Y++
		return DropResult{Phase: PhaseFalling, Steps: []Phase{PhaseFalling}}
	}

	res := DropResult{Locked: true}
	res.enter(PhaseLocking)
	merged := Merge(g.piece, g.board)
	g.pieces++

	cleared, n := ClearFullRows(merged)
	g.board = cleared
	g.rowsCleared += n
	res.RowsCleared = n
	if n > 0 {
		res.enter(PhaseLineClear)
	}

	next := g.spawner.Spawn()
	res.enter(PhaseSpawning)
	if !IsValidMove(next.Shape, next.X, next.Y, g.board) {
		g.gameOver(now)
		res.enter(PhaseGameOver)
		res.GameOver = true
		return res
	}
	g.piece = next
	return res
}

func (g *Game) gameOver(now time.Time) {
	summary := Summary{
		Pieces:      g.pieces,
		RowsCleared: g.rowsCleared,
		StartedAt:   g.startedAt,
		EndedAt:     now,
	}
	g.gamesOver++

	g.board = NewBoard(g.cfg.Rows, g.cfg.Cols)
	g.piece = g.spawner.Spawn()
	g.startedAt = now
	g.pieces = 0
	g.rowsCleared = 0

	if g.onGameOver != nil {
		g.onGameOver(summary)
	}
}

// Apply performs one intent against the current board and piece.
// Moves and rotations that do not fit are dropped silently.
// Returns true if the state changed.
func (g *Game) Apply(in core.Intent) bool {
	switch in {
	case core.IntentMoveLeft:
		return g.try(g.piece.Shape, g.piece.X-1)
	case core.IntentMoveRight:
		return g.try(g.piece.Shape, g.piece.X+1)
	case core.IntentRotateCCW:
		return g.try(Rotate(g.piece.Shape), g.piece.X)
	case core.IntentRotateCW:
		return g.try(RotateN(g.piece.Shape, 3), g.piece.X)
	case core.IntentSoftDropOn:
		return g.setSoftDrop(true)
	case core.IntentSoftDropOff:
		return g.setSoftDrop(false)
	}
	return false
}

func (g *Game) try(s Shape, x int) bool {
	if !IsValidMove(s, x, g.piece.Y, g.board) {
		return false
	}
	g.piece.Shape = s
	g.piece.X = x
	return true
}

func (g *Game) setSoftDrop(on bool) bool {
	if g.softDrop == on {
		return false
	}
	g.softDrop = on
	return true
}
