package sorter

import (
	"cmp"
	"slices"
)

type CarrierStatus struct {
	ID       CarrierID
	Position Vec2
	Occupied bool
}

type ShapeStatus struct {
	Carrier  CarrierID
	Kind     ShapeKind
	State    DragState
	Depth    int
	Position Vec2
}

// Status is a point-in-time copy of everything a frontend needs to draw.
type Status struct {
	Session
	Carriers []CarrierStatus
	// Shapes are sorted by depth, then by carrier ID, so they can be drawn
	// in order.
	Shapes   []ShapeStatus
	Baskets  []Basket
	Dragging CarrierID
	Tweens   int
}

// Shape returns the shape riding carrier id.
func (s Status) Shape(id CarrierID) (ShapeStatus, bool) {
	for _, shape := range s.Shapes {
		if shape.Carrier == id {
			return shape, true
		}
	}
	return ShapeStatus{}, false
}

// Carrier returns carrier id.
func (s Status) Carrier(id CarrierID) (CarrierStatus, bool) {
	for _, c := range s.Carriers {
		if c.ID == id {
			return c, true
		}
	}
	return CarrierStatus{}, false
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := Status{
		Session: *e.w.session.Get(),
		Baskets: e.baskets.All(),
	}
	for c := range e.w.carriers.Values() {
		status.Carriers = append(status.Carriers, CarrierStatus{
			ID:       c.Carrier.ID,
			Position: c.Position.Vec2,
			Occupied: c.Occupied,
		})
	}
	for s := range e.w.shapes.Values() {
		status.Shapes = append(status.Shapes, ShapeStatus{
			Carrier:  s.Carrier,
			Kind:     s.Kind,
			State:    s.State,
			Depth:    s.Depth,
			Position: s.Position.Vec2,
		})
	}
	slices.SortFunc(status.Carriers, func(a, b CarrierStatus) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(status.Shapes, func(a, b ShapeStatus) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.Carrier, b.Carrier)
	})

	if id, ok := e.interaction.Dragging(); ok {
		status.Dragging = id
	}
	status.Tweens = e.w.tweens.Count()
	return status
}
