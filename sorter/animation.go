package sorter

import (
	"github.com/plus3/shapesort/ecs"
	"github.com/rs/zerolog"
)

// Animator runs return animations. Each one is a Tween entity that homes in
// on the carrier's current anchor and hands the shape back when done.
type Animator struct {
	w      *world
	track  *Track
	shapes *ShapeRegistry
	log    zerolog.Logger
}

func newAnimator(w *world, track *Track, shapes *ShapeRegistry) *Animator {
	return &Animator{
		w:      w,
		track:  track,
		shapes: shapes,
		log:    w.log.With().Str("system", "animation").Logger(),
	}
}

func (a *Animator) start(ref *ecs.EntityRef, id CarrierID, from Vec2) {
	a.w.storage.Spawn(Tween{
		Shape:    ref,
		Carrier:  id,
		From:     from,
		Duration: a.w.cfg.ReturnDuration,
	})
}

// step advances one tween by dt. It returns true once the tween is finished
// and should be removed.
func (a *Animator) step(t *Tween) bool {
	shape := a.w.shapes.GetRef(t.Shape)
	if shape == nil || shape.State != Returning {
		return true
	}

	anchor, ok := a.track.Anchor(t.Carrier)
	if !ok {
		a.shapes.destroy(t.Carrier)
		a.log.Debug().Uint32("carrier", uint32(t.Carrier)).Msg("carrier gone before return finished")
		return true
	}

	t.Elapsed += a.w.session.Get().Delta
	if t.Elapsed < t.Duration {
		shape.Position.Vec2 = t.From.Lerp(anchor, float64(t.Elapsed)/float64(t.Duration))
		a.w.presenter.Move(shapeHandle(t.Carrier), shape.Position.Vec2)
		return false
	}

	shape.Position.Vec2 = anchor
	shape.State = Free
	shape.Depth = a.w.cfg.RestDepth
	if c := a.track.get(t.Carrier); c != nil {
		c.Occupied = true
	}
	a.w.presenter.Move(shapeHandle(t.Carrier), anchor)
	a.w.presenter.Restack(shapeHandle(t.Carrier), shape.Depth)
	return true
}

type animationSystem struct {
	Tweens   ecs.Query[tweenView]
	animator *Animator
}

func (s *animationSystem) Execute(*ecs.UpdateFrame) {
	for entity, t := range s.Tweens.Iter() {
		if s.animator.step(t.Tween) {
			s.animator.w.storage.Delete(entity)
		}
	}
}
