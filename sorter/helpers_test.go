package sorter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

// testConfig never spawns on its own so tests control every carrier.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FirstSpawnDelay = time.Hour
	return cfg
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	e, err := New(cfg, WithPresenter(rec), WithSeed(7))
	require.NoError(t, err)
	require.True(t, e.Start())
	return e, rec
}

func spawn(e *Engine, kind ShapeKind) CarrierID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.track.spawn(kind)
}

func placeCarrier(t *testing.T, e *Engine, id CarrierID, x float64) {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.track.get(id)
	require.NotNil(t, c)
	c.Position.X = x
}

func ticks(e *Engine, n int) {
	for range n {
		e.Tick(frame)
	}
}

func shapeOf(t *testing.T, e *Engine, id CarrierID) ShapeStatus {
	t.Helper()
	shape, ok := e.Snapshot().Shape(id)
	require.True(t, ok, "shape of carrier %d", id)
	return shape
}

func carrierOf(t *testing.T, e *Engine, id CarrierID) CarrierStatus {
	t.Helper()
	c, ok := e.Snapshot().Carrier(id)
	require.True(t, ok, "carrier %d", id)
	return c
}

func basketFor(t *testing.T, e *Engine, kind ShapeKind) Vec2 {
	t.Helper()
	for _, b := range e.Baskets() {
		if b.Kind == kind {
			return b.Position
		}
	}
	t.Fatalf("no basket for %s", kind)
	return Vec2{}
}

// drag picks the shape of carrier id at its current position and releases
// it at p.
func drag(t *testing.T, e *Engine, id CarrierID, p Vec2) Outcome {
	t.Helper()
	require.True(t, e.Press(shapeOf(t, e, id).Position))
	dragging, _ := e.interaction.Dragging()
	require.Equal(t, id, dragging)
	require.True(t, e.Move(p))
	outcome, ok := e.Release(p)
	require.True(t, ok)
	return outcome
}
