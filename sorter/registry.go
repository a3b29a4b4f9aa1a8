package sorter

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/shapesort/ecs"
)

// ShapeRegistry indexes the live shapes by the carrier they belong to.
type ShapeRegistry struct {
	w     *world
	index *intmap.Map[CarrierID, ecs.EntityId]
}

func newShapeRegistry(w *world) *ShapeRegistry {
	return &ShapeRegistry{
		w:     w,
		index: intmap.New[CarrierID, ecs.EntityId](32),
	}
}

// Lookup returns the shape bound to carrier id, if any.
func (r *ShapeRegistry) Lookup(id CarrierID) (ecs.EntityId, bool) {
	return r.index.Get(id)
}

func (r *ShapeRegistry) get(id CarrierID) *shapeView {
	entity, ok := r.index.Get(id)
	if !ok {
		return nil
	}
	return r.w.shapes.Get(entity)
}

func (r *ShapeRegistry) Len() int {
	return r.index.Len()
}

func (r *ShapeRegistry) bind(id CarrierID, entity ecs.EntityId) {
	r.index.Put(id, entity)
}

// destroy removes the shape of carrier id. Returns false if there was none.
func (r *ShapeRegistry) destroy(id CarrierID) bool {
	entity, ok := r.index.Get(id)
	if !ok {
		return false
	}
	r.index.Del(id)
	r.w.storage.Delete(entity)
	r.w.presenter.Remove(shapeHandle(id))
	return true
}

// consume is destroy preceded by the Consume cue at p.
func (r *ShapeRegistry) consume(id CarrierID, p Vec2) {
	if _, ok := r.index.Get(id); !ok {
		return
	}
	r.w.presenter.Consume(shapeHandle(id), p)
	r.destroy(id)
}

func (r *ShapeRegistry) reset() {
	r.index = intmap.New[CarrierID, ecs.EntityId](32)
}

// syncSystem pins every free shape to its carrier. Dragging and returning
// shapes are left alone, as are shapes whose carrier is already gone.
type syncSystem struct {
	Shapes ecs.Query[shapeView]
	track  *Track
}

func (s *syncSystem) Execute(*ecs.UpdateFrame) {
	for shape := range s.Shapes.Values() {
		if shape.State != Free {
			continue
		}
		anchor, ok := s.track.Anchor(shape.Carrier)
		if !ok {
			continue
		}
		shape.Position.Vec2 = anchor
		s.track.w.presenter.Move(shapeHandle(shape.Carrier), anchor)
	}
}
