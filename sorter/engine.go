package sorter

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/plus3/shapesort/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// world is the state every session component shares.
type world struct {
	cfg       Config
	log       zerolog.Logger
	storage   *ecs.Storage
	session   *ecs.Singleton[Session]
	presenter Presenter

	carriers *ecs.View[carrierView]
	shapes   *ecs.View[shapeView]
	tweens   *ecs.View[tweenView]
}

// Engine runs one game session. All methods are safe for concurrent use;
// pointer handlers and ticks never interleave.
type Engine struct {
	mu sync.Mutex

	w         *world
	rand      *rand.Rand
	scheduler *ecs.Scheduler

	baskets     *BasketRegistry
	track       *Track
	shapes      *ShapeRegistry
	interaction *Interaction
	resolver    *Resolver
	animator    *Animator
	level       *LevelController
}

type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.w.log = log }
}

// WithPresenter sets where cues go. The default is NopPresenter.
func WithPresenter(p Presenter) Option {
	return func(e *Engine) {
		if p != nil {
			e.w.presenter = p
		}
	}
}

// WithSeed makes shape kinds reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// New validates cfg and builds an engine in phase Idle.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid session config")
	}

	cfg = cfg.Clone()

	storage := ecs.NewStorage(newComponentRegistry())
	e := &Engine{
		w: &world{
			cfg:       cfg,
			log:       zerolog.Nop(),
			storage:   storage,
			presenter: NopPresenter{},
			carriers:  ecs.NewView[carrierView](storage),
			shapes:    ecs.NewView[shapeView](storage),
			tweens:    ecs.NewView[tweenView](storage),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rand == nil {
		e.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w := e.w
	w.session = ecs.NewSingleton(storage, Session{})

	e.baskets = NewBasketRegistry(cfg.Baskets)
	e.shapes = newShapeRegistry(w)
	e.level = newLevelController(w)
	e.track = newTrack(w, e.shapes, e.level, e.rand)
	e.animator = newAnimator(w, e.track, e.shapes)
	e.resolver = newResolver(w, e.baskets, e.shapes, e.level, e.animator)
	e.interaction = newInteraction(w, e.track, e.resolver)
	e.level.clear = e.clearBoard
	e.level.newSession()

	e.scheduler = ecs.NewScheduler(storage)
	e.scheduler.SetGuard(&e.mu)
	e.scheduler.Register(&clockSystem{})
	e.scheduler.Register(&spawnSystem{track: e.track})
	e.scheduler.Register(&trackSystem{track: e.track})
	e.scheduler.Register(&syncSystem{track: e.track})
	e.scheduler.Register(&animationSystem{animator: e.animator})
	e.scheduler.Register(&levelSystem{level: e.level})

	w.log.Debug().
		Int("levels", len(cfg.Levels)).
		Int("baskets", len(cfg.Baskets)).
		Msg("engine ready")
	return e, nil
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(math.Round(sec * float64(time.Second)))
}

// Tick advances the session by dt: clock, spawner, track, shape sync,
// return animations, level check.
func (e *Engine) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.scheduler.Once(dt.Seconds())
}

// Run ticks every interval, measuring real time, until ctx is done.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	return e.scheduler.Run(ctx, interval)
}

// Start begins level 1. It returns false unless the session is Idle.
func (e *Engine) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level.Start()
}

// Reset discards the board and starts over at level 1 with score 0.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level.Reset()
}

// Abandon discards the board and goes back to Idle.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level.Abandon()
}

// Press tries to pick the shape under p.
func (e *Engine) Press(p Vec2) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interaction.Press(p)
}

// Move drags the held shape to p.
func (e *Engine) Move(p Vec2) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interaction.Move(p)
}

// Release drops the held shape at p. ok is false when nothing was held.
func (e *Engine) Release(p Vec2) (outcome Outcome, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interaction.Release(p)
}

// Session returns a copy of the session state.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.w.session.Get()
}

// Config returns a copy of the session's configuration.
func (e *Engine) Config() Config {
	return e.w.cfg.Clone()
}

// Baskets returns the baskets in configuration order.
func (e *Engine) Baskets() []Basket {
	return e.baskets.All()
}

// Judge says what dropping kind at p would do, without doing it.
func (e *Engine) Judge(kind ShapeKind, p Vec2) Outcome {
	return e.resolver.Judge(kind, p)
}

// Stats returns the per-system timings of the tick loop.
func (e *Engine) Stats() *ecs.SchedulerStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scheduler.GetStats()
}

// Inspect calls fn with the engine's storage while holding the engine lock.
func (e *Engine) Inspect(fn func(storage *ecs.Storage)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.w.storage)
}

// clearBoard removes every carrier, shape and return animation without
// counting any of them.
func (e *Engine) clearBoard() {
	for c := range e.w.carriers.Values() {
		e.w.presenter.Remove(carrierHandle(c.Carrier.ID))
	}
	for s := range e.w.shapes.Values() {
		e.w.presenter.Remove(shapeHandle(s.Carrier))
	}

	e.w.storage.Clear()
	e.track.reset()
	e.shapes.reset()
	e.interaction.reset()
}
