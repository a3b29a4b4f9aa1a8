package frontend

import (
	"testing"
	"time"

	"github.com/plus3/shapesort/sorter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type playRecorder struct {
	played []sorter.Outcome
}

func (p *playRecorder) Play(o sorter.Outcome) {
	p.played = append(p.played, o)
}

func TestPointerEvents(t *testing.T) {
	var p pointer
	a := sorter.Vec2{X: 10, Y: 20}
	b := sorter.Vec2{X: 30, Y: 40}

	_, ok := p.sample(false, a)
	assert.False(t, ok, "idle pointer")

	ev, ok := p.sample(true, a)
	require.True(t, ok)
	assert.Equal(t, pointerEvent{phase: pointerPress, pos: a}, ev)

	_, ok = p.sample(true, a)
	assert.False(t, ok, "held still")

	ev, ok = p.sample(true, b)
	require.True(t, ok)
	assert.Equal(t, pointerEvent{phase: pointerMove, pos: b}, ev)

	ev, ok = p.sample(false, b)
	require.True(t, ok)
	assert.Equal(t, pointerEvent{phase: pointerRelease, pos: b}, ev)

	_, ok = p.sample(false, a)
	assert.False(t, ok, "hover after release")
}

func TestButtonContains(t *testing.T) {
	s := newScreens(sorter.Size{Width: 800, Height: 600})

	assert.True(t, s.start.contains(sorter.Vec2{X: 400, Y: 300}))
	assert.True(t, s.start.contains(sorter.Vec2{X: 500, Y: 325}))
	assert.False(t, s.start.contains(sorter.Vec2{X: 501, Y: 300}))
	assert.True(t, s.again.contains(sorter.Vec2{X: 280, Y: 400}))
	assert.True(t, s.menu.contains(sorter.Vec2{X: 520, Y: 400}))
	assert.False(t, s.again.contains(sorter.Vec2{X: 520, Y: 400}))
}

func TestSceneTracksTints(t *testing.T) {
	scene := NewScene(nil, 1)
	scene.Spawn(1, sorter.Circle, sorter.Vec2{}, sorter.Vec2{})
	scene.Spawn(2, sorter.Square, sorter.Vec2{}, sorter.Vec2{})

	assert.Contains(t, palette, scene.Tint(1))
	assert.Contains(t, palette, scene.Tint(2))

	scene.Remove(sorter.Handle{Kind: sorter.EntityCarrier, ID: 1})
	assert.Contains(t, palette, scene.Tint(1), "carrier removal keeps the shape tint")

	scene.Remove(sorter.Handle{Kind: sorter.EntityShape, ID: 1})
	assert.NotContains(t, palette, scene.Tint(1))
}

func TestConsumeStartsEffects(t *testing.T) {
	scene := NewScene(nil, 1)
	scene.Spawn(4, sorter.Triangle, sorter.Vec2{}, sorter.Vec2{})

	scene.Consume(sorter.Handle{Kind: sorter.EntityShape, ID: 4}, sorter.Vec2{X: 100, Y: 100})
	assert.Equal(t, 1+burstStars, scene.Effects())

	scene.Consume(sorter.Handle{Kind: sorter.EntityShape, ID: 99}, sorter.Vec2{})
	assert.Equal(t, 1+burstStars, scene.Effects(), "unknown shape")

	scene.Update(shrinkDuration)
	assert.Equal(t, burstStars, scene.Effects(), "shrink done first")

	scene.Update(burstDuration)
	assert.Zero(t, scene.Effects())
}

func TestPlayForwardsAndQueues(t *testing.T) {
	rec := &playRecorder{}
	scene := NewScene(rec, 1)

	scene.Play(sorter.OutcomeCorrect)
	scene.Play(sorter.OutcomeWin)
	assert.Equal(t, []sorter.Outcome{sorter.OutcomeCorrect, sorter.OutcomeWin}, rec.played)
	assert.Equal(t, rec.played, scene.Outcomes())
	assert.Empty(t, scene.Outcomes(), "drained")
}

func TestEffectMotion(t *testing.T) {
	s := newShrink(look{kind: sorter.Square}, sorter.Vec2{})
	assert.Equal(t, 1.0, s.scale())
	s.update(shrinkDuration / 2)
	assert.InDelta(t, 0.5, s.scale(), 1e-9)
	assert.False(t, s.update(shrinkDuration))
	assert.Zero(t, s.scale())

	st := &star{from: sorter.Vec2{X: 10, Y: 10}, dir: sorter.Vec2{X: 1}, distance: 80}
	assert.Equal(t, 12.0, st.radius())
	st.update(burstDuration / 2)
	assert.InDelta(t, 50, st.position().X, 1e-9)
	assert.InDelta(t, 0.5, st.alpha(), 1e-9)
	st.update(time.Hour)
	assert.InDelta(t, 90, st.position().X, 1e-9)
	assert.InDelta(t, 2.4, st.radius(), 1e-9)
}

func TestBurstSpread(t *testing.T) {
	scene := NewScene(nil, 3)
	for _, e := range newBurst(sorter.Vec2{}, scene.rand) {
		s := e.(*star)
		assert.InDelta(t, 1, s.dir.X*s.dir.X+s.dir.Y*s.dir.Y, 1e-9)
		assert.GreaterOrEqual(t, s.distance, 50.0)
		assert.Less(t, s.distance, 100.0)
	}
}
