package sorter

import (
	"github.com/plus3/shapesort/ecs"
	"github.com/rs/zerolog"
)

// Interaction turns pointer events into pick, drag and drop. It holds at
// most one shape at a time.
type Interaction struct {
	w        *world
	track    *Track
	resolver *Resolver
	log      zerolog.Logger

	dragged *ecs.EntityRef
	carrier CarrierID
}

func newInteraction(w *world, track *Track, resolver *Resolver) *Interaction {
	return &Interaction{
		w:        w,
		track:    track,
		resolver: resolver,
		log:      w.log.With().Str("system", "interaction").Logger(),
	}
}

// Dragging returns the carrier of the held shape.
func (in *Interaction) Dragging() (CarrierID, bool) {
	if !in.dragged.Alive() {
		return 0, false
	}
	return in.carrier, true
}

// pick returns the free shape under p. When several overlap, the most
// recently spawned one wins.
func (in *Interaction) pick(p Vec2) (ecs.EntityId, shapeView, bool) {
	var (
		best   shapeView
		bestID ecs.EntityId
		found  bool
	)
	for entity, shape := range in.w.shapes.Iter() {
		if shape.State != Free || !shape.Kind.Contains(shape.Position.Vec2, p) {
			continue
		}
		if !found || shape.Carrier > best.Carrier {
			best, bestID, found = shape, entity, true
		}
	}
	return bestID, best, found
}

// Press picks up the shape under p. It does nothing unless the level is
// active and no shape is already held.
func (in *Interaction) Press(p Vec2) bool {
	if in.w.session.Get().Phase != Active {
		return false
	}
	if in.dragged.Alive() {
		return false
	}

	entity, shape, ok := in.pick(p)
	if !ok {
		return false
	}

	shape.State = Dragging
	shape.Depth = in.w.cfg.DragDepth
	if c := in.track.get(shape.Carrier); c != nil {
		c.Occupied = false
	}

	in.dragged = in.w.storage.CreateEntityRef(entity)
	in.carrier = shape.Carrier
	in.w.presenter.Restack(shapeHandle(shape.Carrier), shape.Depth)
	in.log.Debug().Uint32("carrier", uint32(shape.Carrier)).Stringer("kind", shape.Kind).Msg("picked")
	return true
}

// Move drags the held shape so that it sits exactly on p.
func (in *Interaction) Move(p Vec2) bool {
	shape := in.held()
	if shape == nil {
		return false
	}
	shape.Position.Vec2 = p
	in.w.presenter.Move(shapeHandle(shape.Carrier), p)
	return true
}

// Release drops the held shape at p and resolves the drop. The slot is
// empty afterwards whatever the outcome. If the shape was destroyed while
// held, nothing is resolved.
func (in *Interaction) Release(p Vec2) (Outcome, bool) {
	shape := in.held()
	ref := in.dragged
	in.dragged = nil
	in.carrier = 0
	if shape == nil {
		return 0, false
	}

	shape.Position.Vec2 = p
	in.w.presenter.Move(shapeHandle(shape.Carrier), p)
	return in.resolver.Resolve(ref, p), true
}

func (in *Interaction) held() *shapeView {
	if in.dragged == nil {
		return nil
	}
	shape := in.w.shapes.GetRef(in.dragged)
	if shape == nil {
		in.dragged = nil
		in.carrier = 0
	}
	return shape
}

func (in *Interaction) reset() {
	in.dragged = nil
	in.carrier = 0
}
