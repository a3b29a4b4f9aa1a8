package sorter

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"
	"github.com/plus3/shapesort/ecs"
	"github.com/rs/zerolog"
)

// Track owns the carriers: it spawns them on the level's cadence, moves them
// left every tick and retires them once they leave the field.
type Track struct {
	w      *world
	shapes *ShapeRegistry
	level  *LevelController
	log    zerolog.Logger
	rand   *rand.Rand

	index *intmap.Map[CarrierID, ecs.EntityId]
	last  CarrierID
}

func newTrack(w *world, shapes *ShapeRegistry, level *LevelController, rng *rand.Rand) *Track {
	return &Track{
		w:      w,
		shapes: shapes,
		level:  level,
		log:    w.log.With().Str("system", "track").Logger(),
		rand:   rng,
		index:  intmap.New[CarrierID, ecs.EntityId](32),
	}
}

// Lookup returns the entity of carrier id.
func (t *Track) Lookup(id CarrierID) (ecs.EntityId, bool) {
	return t.index.Get(id)
}

func (t *Track) get(id CarrierID) *carrierView {
	entity, ok := t.index.Get(id)
	if !ok {
		return nil
	}
	return t.w.carriers.Get(entity)
}

// Anchor is where a free shape on carrier id sits right now.
func (t *Track) Anchor(id CarrierID) (Vec2, bool) {
	c := t.get(id)
	if c == nil {
		return Vec2{}, false
	}
	return c.Position.Add(t.w.cfg.ShapeOffset), true
}

// Len returns the number of live carriers.
func (t *Track) Len() int {
	return t.index.Len()
}

func (t *Track) pickKind() ShapeKind {
	kinds := t.w.cfg.Kinds
	return kinds[t.rand.IntN(len(kinds))]
}

// spawn puts a new carrier at the spawn point with a shape of kind on it.
func (t *Track) spawn(kind ShapeKind) CarrierID {
	t.last++
	id := t.last

	carrierPos := Vec2{X: t.w.cfg.SpawnX, Y: t.w.cfg.LaneY}
	shapePos := carrierPos.Add(t.w.cfg.ShapeOffset)

	t.index.Put(id, t.w.storage.Spawn(Carrier{ID: id, Occupied: true}, Position{carrierPos}))
	t.shapes.bind(id, t.w.storage.Spawn(
		Shape{Kind: kind, Carrier: id, State: Free, Depth: t.w.cfg.RestDepth},
		Position{shapePos},
	))

	t.w.presenter.Spawn(id, kind, carrierPos, shapePos)
	t.log.Debug().Uint32("carrier", uint32(id)).Stringer("kind", kind).Msg("spawned")
	return id
}

// retire deletes a carrier that left the field together with whatever shape
// is still bound to it, in any drag state.
func (t *Track) retire(entity ecs.EntityId, id CarrierID) {
	t.w.storage.Delete(entity)
	t.index.Del(id)
	t.w.presenter.Remove(carrierHandle(id))

	if t.shapes.destroy(id) {
		session := t.w.session.Get()
		session.Counters.Expired++
		t.level.Record()
		t.log.Debug().Uint32("carrier", uint32(id)).Msg("expired with shape")
	}
}

// reset forgets every carrier. IDs keep counting up.
func (t *Track) reset() {
	t.index = intmap.New[CarrierID, ecs.EntityId](32)
}

// spawnSystem starts a new carrier whenever the session clock passes
// NextSpawn during an active level.
type spawnSystem struct {
	Session ecs.Singleton[Session]
	track   *Track
}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Phase != Active || session.Clock <= session.NextSpawn {
		return
	}

	kind := s.track.pickKind()
	// New entities show up once the frame is done, unless the level ended
	// during it.
	frame.Commands.Defer(func() {
		if s.Session.Get().Phase == Active {
			s.track.spawn(kind)
		}
	})
	session.NextSpawn = session.Clock + Level{Speed: session.Speed, Spacing: session.Spacing}.SpawnInterval()
}

// trackSystem advances every carrier by Speed per FrameUnit of elapsed time.
type trackSystem struct {
	Carriers ecs.Query[carrierView]
	Session  ecs.Singleton[Session]
	track    *Track
}

func (s *trackSystem) Execute(*ecs.UpdateFrame) {
	session := s.Session.Get()
	cfg := &s.track.w.cfg
	dx := session.Speed * float64(session.Delta) / float64(cfg.FrameUnit)

	for entity, c := range s.Carriers.Iter() {
		c.Position.X -= dx
		if c.Position.X < cfg.RetireX {
			s.track.retire(entity, c.Carrier.ID)
			continue
		}
		s.track.w.presenter.Move(carrierHandle(c.Carrier.ID), c.Position.Vec2)
	}
}
