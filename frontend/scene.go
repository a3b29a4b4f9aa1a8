package frontend

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/plus3/shapesort/sorter"
)

// palette holds the tints shapes are drawn with.
var palette = []color.RGBA{
	{0xff, 0x00, 0x00, 0xff},
	{0x00, 0xff, 0x00, 0xff},
	{0x00, 0x00, 0xff, 0xff},
	{0xff, 0xff, 0x00, 0xff},
	{0xff, 0x00, 0xff, 0xff},
	{0x00, 0xff, 0xff, 0xff},
	{0xff, 0x80, 0x00, 0xff},
	{0x80, 0x00, 0xff, 0xff},
	{0x00, 0x80, 0xff, 0xff},
	{0xff, 0x00, 0x80, 0xff},
}

// CuePlayer plays the sound for an outcome.
type CuePlayer interface {
	Play(o sorter.Outcome)
}

// look is how one shape is drawn.
type look struct {
	kind sorter.ShapeKind
	tint color.RGBA
}

// Scene receives the engine's cues. It keeps per-shape tints and the
// running effects, and forwards outcomes to the sound player.
//
// The engine calls Scene while holding its lock, so Scene never calls back
// into the engine. It is not safe for concurrent use: drive the engine from
// the game's Update.
type Scene struct {
	rand    *rand.Rand
	looks   map[sorter.CarrierID]look
	effects []effect
	sound   CuePlayer

	// outcomes played since the last drain
	outcomes []sorter.Outcome
}

func NewScene(sound CuePlayer, seed uint64) *Scene {
	return &Scene{
		rand:  rand.New(rand.NewPCG(seed, seed>>1|1)),
		looks: make(map[sorter.CarrierID]look),
		sound: sound,
	}
}

func (s *Scene) Spawn(carrier sorter.CarrierID, kind sorter.ShapeKind, _, _ sorter.Vec2) {
	s.looks[carrier] = look{kind: kind, tint: palette[s.rand.IntN(len(palette))]}
}

func (s *Scene) Move(sorter.Handle, sorter.Vec2) {}

func (s *Scene) Restack(sorter.Handle, int) {}

// Consume starts the shrink and the star burst where the shape was dropped.
func (s *Scene) Consume(h sorter.Handle, p sorter.Vec2) {
	l, ok := s.looks[h.ID]
	if !ok {
		return
	}
	s.effects = append(s.effects, newShrink(l, p))
	s.effects = append(s.effects, newBurst(p, s.rand)...)
}

func (s *Scene) Play(o sorter.Outcome) {
	s.outcomes = append(s.outcomes, o)
	if s.sound != nil {
		s.sound.Play(o)
	}
}

// Remove forgets a shape's tint. Carrier handles carry nothing to forget.
func (s *Scene) Remove(h sorter.Handle) {
	if h.Kind == sorter.EntityShape {
		delete(s.looks, h.ID)
	}
}

// Update ages the effects by dt and drops the finished ones.
func (s *Scene) Update(dt time.Duration) {
	live := s.effects[:0]
	for _, e := range s.effects {
		if e.update(dt) {
			live = append(live, e)
		}
	}
	clear(s.effects[len(live):])
	s.effects = live
}

// Tint returns the colour of the shape on carrier id.
func (s *Scene) Tint(id sorter.CarrierID) color.RGBA {
	if l, ok := s.looks[id]; ok {
		return l.tint
	}
	return color.RGBA{0x80, 0x80, 0x80, 0xff}
}

// Outcomes drains the outcomes played since the last call.
func (s *Scene) Outcomes() []sorter.Outcome {
	out := s.outcomes
	s.outcomes = nil
	return out
}

func (s *Scene) Effects() int {
	return len(s.effects)
}
