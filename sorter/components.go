package sorter

import (
	"fmt"
	"time"

	"github.com/plus3/shapesort/ecs"
)

// CarrierID identifies a carrier for its whole life. IDs are handed out in
// increasing order and never reused within an Engine.
type CarrierID uint32

// DragState says who controls a shape's position.
type DragState uint8

const (
	// Free shapes ride their carrier.
	Free DragState = iota
	// Dragging shapes follow the pointer.
	Dragging
	// Returning shapes are animating back to their carrier.
	Returning
)

func (s DragState) String() string {
	switch s {
	case Free:
		return "free"
	case Dragging:
		return "dragging"
	case Returning:
		return "returning"
	default:
		return fmt.Sprintf("DragState(%d)", uint8(s))
	}
}

// Position is shared by carriers and shapes.
type Position struct {
	Vec2
}

// Carrier is one conveyor slot.
type Carrier struct {
	ID CarrierID
	// Occupied is false while the carrier's shape is away being dragged or
	// returning, and after it was consumed.
	Occupied bool
}

// Shape is a draggable piece bound to a carrier by ID.
type Shape struct {
	Kind    ShapeKind
	Carrier CarrierID
	State   DragState
	Depth   int
}

// Tween moves a shape back onto its carrier. It is its own entity so any
// number of returns can run at once.
type Tween struct {
	Shape    *ecs.EntityRef
	Carrier  CarrierID
	From     Vec2
	Elapsed  time.Duration
	Duration time.Duration
}

type carrierView struct {
	*Carrier
	*Position
}

type shapeView struct {
	*Shape
	*Position
}

type tweenView struct {
	*Tween
}

// Phase is the level controller state.
type Phase uint8

const (
	Idle Phase = iota
	Active
	Transitioning
	Complete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Transitioning:
		return "transitioning"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Counters tallies outcomes over a playthrough.
type Counters struct {
	Correct   int
	Incorrect int
	Miss      int
	// Expired counts carriers that left the field with their shape aboard.
	Expired int
}

// Session is the game state owned by the level controller. It lives in the
// ECS storage as a singleton.
type Session struct {
	Phase     Phase
	Score     int
	Level     int
	Levels    int
	Processed int
	Quota     int
	Speed     float64
	Spacing   float64
	Counters  Counters

	Clock          time.Duration
	Delta          time.Duration
	NextSpawn      time.Duration
	TransitionEnds time.Duration
}

// Remaining is the number of shapes still needed to finish the level.
func (s Session) Remaining() int {
	return max(0, s.Quota-s.Processed)
}

// EntityKind distinguishes the two entity kinds a Presenter sees.
type EntityKind uint8

const (
	EntityCarrier EntityKind = iota + 1
	EntityShape
)

// Handle names an entity to the presentation layer. A shape shares the ID
// of the carrier it was spawned on.
type Handle struct {
	Kind EntityKind
	ID   CarrierID
}

func carrierHandle(id CarrierID) Handle { return Handle{Kind: EntityCarrier, ID: id} }
func shapeHandle(id CarrierID) Handle   { return Handle{Kind: EntityShape, ID: id} }

func (h Handle) String() string {
	switch h.Kind {
	case EntityCarrier:
		return fmt.Sprintf("carrier/%d", h.ID)
	case EntityShape:
		return fmt.Sprintf("shape/%d", h.ID)
	default:
		return fmt.Sprintf("unknown/%d", h.ID)
	}
}

// Outcome is a cue for the presentation layer.
type Outcome uint8

const (
	OutcomeCorrect Outcome = iota + 1
	OutcomeIncorrect
	OutcomeMiss
	OutcomeLevelComplete
	OutcomeWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeMiss:
		return "miss"
	case OutcomeLevelComplete:
		return "level_complete"
	case OutcomeWin:
		return "win"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

func newComponentRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Carrier](registry)
	ecs.RegisterComponent[Shape](registry)
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Tween](registry)
	return registry
}
