package simulate

import (
	"context"
	"time"

	"github.com/plus3/shapesort/sorter"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrTimeLimit = eris.New("session did not finish within the time limit")

// Options configure one simulated session.
type Options struct {
	Seed     uint64
	Accuracy float64
	// Frame is the simulated time per tick.
	Frame time.Duration
	// ReactionTicks is how many ticks pass between bot moves.
	ReactionTicks int
	// Limit caps simulated time.
	Limit time.Duration
	Logger zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Seed:          1,
		Accuracy:      1,
		Frame:         16 * time.Millisecond,
		ReactionTicks: 10,
		Limit:         10 * time.Minute,
		Logger:        zerolog.Nop(),
	}
}

// Result is what one session ended with.
type Result struct {
	Seed     uint64
	Won      bool
	Phase    sorter.Phase
	Level    int
	Score    int
	Counters sorter.Counters
	Ticks    int
	// Simulated is the session clock at the end.
	Simulated time.Duration
	// Wall is how long the run took in real time.
	Wall     time.Duration
	Outcomes map[sorter.Outcome]int
}

func newResult(seed uint64, e *sorter.Engine, rec *sorter.Recorder) Result {
	session := e.Session()
	r := Result{
		Seed:      seed,
		Won:       session.Phase == sorter.Complete,
		Phase:     session.Phase,
		Level:     session.Level,
		Score:     session.Score,
		Counters:  session.Counters,
		Simulated: session.Clock,
		Outcomes:  make(map[sorter.Outcome]int),
	}
	for _, o := range rec.Outcomes() {
		r.Outcomes[o]++
	}
	return r
}

// Run plays one session with fixed ticks as fast as possible. It stops when
// the session completes, the time limit passes or ctx is done.
func Run(ctx context.Context, cfg sorter.Config, opts Options) (Result, error) {
	start := time.Now()
	rec := &sorter.Recorder{}
	e, err := sorter.New(cfg,
		sorter.WithSeed(opts.Seed),
		sorter.WithPresenter(rec),
		sorter.WithLogger(opts.Logger),
	)
	if err != nil {
		return Result{}, err
	}

	bot := NewBot(opts.Accuracy, opts.Seed)
	reaction := max(opts.ReactionTicks, 1)
	e.Start()

	ticks := 0
	for e.Session().Phase != sorter.Complete {
		if err := ctx.Err(); err != nil {
			return newResult(opts.Seed, e, rec), err
		}
		if e.Session().Clock >= opts.Limit {
			res := newResult(opts.Seed, e, rec)
			res.Ticks, res.Wall = ticks, time.Since(start)
			return res, eris.Wrapf(ErrTimeLimit, "seed %d stopped at level %d", opts.Seed, res.Level)
		}

		e.Tick(opts.Frame)
		ticks++
		if ticks%reaction == 0 {
			bot.Act(e)
		}
	}

	res := newResult(opts.Seed, e, rec)
	res.Ticks, res.Wall = ticks, time.Since(start)
	opts.Logger.Info().
		Uint64("seed", opts.Seed).
		Int("score", res.Score).
		Int("ticks", ticks).
		Dur("simulated", res.Simulated).
		Msg("session finished")
	return res, nil
}

// RunRealtime plays one session against the engine's own tick loop, with
// the bot polling on a separate goroutine.
func RunRealtime(ctx context.Context, cfg sorter.Config, opts Options) (Result, error) {
	start := time.Now()
	rec := &sorter.Recorder{}
	e, err := sorter.New(cfg,
		sorter.WithSeed(opts.Seed),
		sorter.WithPresenter(rec),
		sorter.WithLogger(opts.Logger),
	)
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Limit)
	defer cancel()

	bot := NewBot(opts.Accuracy, opts.Seed)
	e.Start()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.Run(ctx, opts.Frame)
	})
	g.Go(func() error {
		defer cancel()
		poll := time.NewTicker(opts.Frame * time.Duration(max(opts.ReactionTicks, 1)))
		defer poll.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-poll.C:
				if e.Session().Phase == sorter.Complete {
					return nil
				}
				bot.Act(e)
			}
		}
	})

	err = g.Wait()
	res := newResult(opts.Seed, e, rec)
	res.Wall = time.Since(start)
	if res.Won {
		return res, nil
	}
	if eris.Is(err, context.DeadlineExceeded) {
		return res, eris.Wrapf(ErrTimeLimit, "seed %d stopped at level %d", opts.Seed, res.Level)
	}
	return res, err
}

// RunMany plays n sessions in parallel with seeds first, first+1 and so on.
// Results come back in seed order.
func RunMany(ctx context.Context, cfg sorter.Config, opts Options, n, workers int) ([]Result, error) {
	results := make([]Result, n)
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range n {
		run := opts
		run.Seed = opts.Seed + uint64(i)
		g.Go(func() error {
			res, err := Run(ctx, cfg, run)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
