package sorter

import (
	"github.com/plus3/shapesort/ecs"
	"github.com/rs/zerolog"
)

// Resolver decides what a drop means.
type Resolver struct {
	w        *world
	baskets  *BasketRegistry
	shapes   *ShapeRegistry
	level    *LevelController
	animator *Animator
	log      zerolog.Logger
}

func newResolver(w *world, baskets *BasketRegistry, shapes *ShapeRegistry, level *LevelController, animator *Animator) *Resolver {
	return &Resolver{
		w:        w,
		baskets:  baskets,
		shapes:   shapes,
		level:    level,
		animator: animator,
		log:      w.log.With().Str("system", "resolver").Logger(),
	}
}

// Judge classifies a drop of kind at p without changing anything.
func (r *Resolver) Judge(kind ShapeKind, p Vec2) Outcome {
	basket, ok := r.baskets.Hit(p, r.w.cfg.CaptureRadius)
	switch {
	case !ok:
		return OutcomeMiss
	case basket.Kind == kind:
		return OutcomeCorrect
	default:
		return OutcomeIncorrect
	}
}

// Resolve applies the drop of the referenced shape at p. A correct drop
// scores, counts towards the quota and consumes the shape; anything else
// sends the shape back to its carrier.
func (r *Resolver) Resolve(ref *ecs.EntityRef, p Vec2) Outcome {
	shape := r.w.shapes.GetRef(ref)
	if shape == nil {
		return OutcomeMiss
	}

	session := r.w.session.Get()
	id, kind := shape.Carrier, shape.Kind
	outcome := r.Judge(kind, p)

	switch outcome {
	case OutcomeCorrect:
		session.Score += r.w.cfg.Reward
		session.Counters.Correct++
		r.shapes.consume(id, p)
		r.level.Record()
	case OutcomeIncorrect, OutcomeMiss:
		if outcome == OutcomeMiss {
			session.Counters.Miss++
		} else {
			session.Counters.Incorrect++
		}
		shape.State = Returning
		r.animator.start(ref, id, p)
	}

	r.w.presenter.Play(outcome)
	r.log.Debug().
		Uint32("carrier", uint32(id)).
		Stringer("kind", kind).
		Stringer("outcome", outcome).
		Int("score", session.Score).
		Msg("resolved drop")
	return outcome
}
