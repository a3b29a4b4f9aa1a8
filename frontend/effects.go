package frontend

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/shapesort/sorter"
)

const (
	shrinkDuration = 300 * time.Millisecond
	burstDuration  = 500 * time.Millisecond
	burstStars     = 5
)

type effect interface {
	// update advances the effect and reports whether it is still running.
	update(dt time.Duration) bool
	draw(screen *ebiten.Image)
}

// progress is elapsed/total clamped to [0, 1].
func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return min(float64(elapsed)/float64(total), 1)
}

// shrink scales a matched shape down to nothing where it was dropped.
type shrink struct {
	look    look
	at      sorter.Vec2
	elapsed time.Duration
}

func newShrink(l look, at sorter.Vec2) *shrink {
	return &shrink{look: l, at: at}
}

func (s *shrink) update(dt time.Duration) bool {
	s.elapsed += dt
	return s.elapsed < shrinkDuration
}

func (s *shrink) scale() float64 {
	return 1 - progress(s.elapsed, shrinkDuration)
}

func (s *shrink) draw(screen *ebiten.Image) {
	drawShape(screen, s.look.kind, s.at, s.scale(), s.look.tint)
}

// star flies out from a correct drop, fading and shrinking.
type star struct {
	from     sorter.Vec2
	dir      sorter.Vec2
	distance float64
	elapsed  time.Duration
}

func newBurst(at sorter.Vec2, r *rand.Rand) []effect {
	stars := make([]effect, burstStars)
	for i := range stars {
		angle := r.Float64() * 2 * math.Pi
		stars[i] = &star{
			from:     at,
			dir:      sorter.Vec2{X: math.Cos(angle), Y: math.Sin(angle)},
			distance: 50 + r.Float64()*50,
		}
	}
	return stars
}

func (s *star) update(dt time.Duration) bool {
	s.elapsed += dt
	return s.elapsed < burstDuration
}

func (s *star) position() sorter.Vec2 {
	t := progress(s.elapsed, burstDuration)
	return sorter.Vec2{
		X: s.from.X + s.dir.X*s.distance*t,
		Y: s.from.Y + s.dir.Y*s.distance*t,
	}
}

// radius goes from 12 down to 2.4 over the burst.
func (s *star) radius() float64 {
	return 12 * (1 - 0.8*progress(s.elapsed, burstDuration))
}

func (s *star) alpha() float64 {
	return 1 - progress(s.elapsed, burstDuration)
}

func (s *star) draw(screen *ebiten.Image) {
	drawStar(screen, s.position(), s.radius(), s.alpha())
}

func (s *Scene) drawEffects(screen *ebiten.Image) {
	for _, e := range s.effects {
		e.draw(screen)
	}
}
