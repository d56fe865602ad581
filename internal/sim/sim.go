// Package sim plays tetris headlessly with a random bot on a virtual clock.
package sim

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/loop"
)

// DefaultBotInterval is how often the bot acts.
const DefaultBotInterval = 150 * time.Millisecond

// botIntents is what the bot picks from. Moves are listed twice so pieces
// spread across the board more than they spin.
var botIntents = []core.Intent{
	core.IntentMoveLeft,
	core.IntentMoveLeft,
	core.IntentMoveRight,
	core.IntentMoveRight,
	core.IntentRotateCW,
	core.IntentRotateCCW,
	core.IntentSoftDropOn,
	core.IntentSoftDropOff,
}

// Options configures a run.
type Options struct {
	Config      config.TetrisConfig
	Seed        int64
	Pieces      int           // stop after this many pieces lock
	BotInterval time.Duration // 0 = DefaultBotInterval
	Start       time.Time     // virtual clock origin; zero = time.Now()
	OnGameOver  func(tetris.Summary)
}

// Result describes a finished run.
type Result struct {
	Final       tetris.Snapshot
	Pieces      int
	RowsCleared int
	GamesOver   int
	Elapsed     time.Duration // virtual time
}

// Run plays until opts.Pieces pieces have locked or ctx is done.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Pieces <= 0 {
		return Result{}, errors.New("sim: pieces must be positive")
	}
	if opts.BotInterval <= 0 {
		opts.BotInterval = DefaultBotInterval
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}

	game := tetris.New(opts.Config.Game(), rand.New(rand.NewSource(opts.Seed)), start)
	bot := rand.New(rand.NewSource(opts.Seed + 1))

	var res Result
	game.OnGameOver(func(s tetris.Summary) {
		res.GamesOver++
		if opts.OnGameOver != nil {
			opts.OnGameOver(s)
		}
	})

	sched := loop.New()
	sched.Every(opts.Config.PollInterval(), func(now time.Time) {
		drop, ok := game.Tick(now)
		if !ok || !drop.Locked {
			return
		}
		res.Pieces++
		res.RowsCleared += drop.RowsCleared
		if res.Pieces >= opts.Pieces {
			sched.Stop()
		}
	})
	sched.Every(opts.BotInterval, func(time.Time) {
		game.Apply(botIntents[bot.Intn(len(botIntents))])
	})

	end, err := sched.Simulate(ctx, start, opts.Config.PollInterval())
	res.Final = game.Snapshot()
	res.Elapsed = end.Sub(start)
	return res, err
}
