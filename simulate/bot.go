// Package simulate plays sessions without a window.
package simulate

import (
	"math/rand/v2"

	"github.com/plus3/shapesort/sorter"
)

// Bot is an autoplayer. It drags the oldest visible shape to a basket,
// choosing the right one with probability Accuracy.
type Bot struct {
	// Accuracy is the chance of a correct drop, in [0, 1].
	Accuracy float64
	// Margin keeps the bot from grabbing shapes still entering the field.
	Margin float64

	rand *rand.Rand
}

func NewBot(accuracy float64, seed uint64) *Bot {
	return &Bot{
		Accuracy: accuracy,
		Margin:   30,
		rand:     rand.New(rand.NewPCG(seed, ^seed)),
	}
}

// target picks the free shape closest to leaving the field.
func (b *Bot) target(status sorter.Status, field sorter.Size) (sorter.ShapeStatus, bool) {
	var (
		best  sorter.ShapeStatus
		found bool
	)
	for _, s := range status.Shapes {
		if s.State != sorter.Free {
			continue
		}
		if s.Position.X > field.Width-b.Margin || s.Position.X < 0 {
			continue
		}
		if !found || s.Position.X < best.Position.X {
			best, found = s, true
		}
	}
	return best, found
}

// dropPoint is where the bot releases a shape of kind.
func (b *Bot) dropPoint(kind sorter.ShapeKind, baskets []sorter.Basket, field sorter.Size) sorter.Vec2 {
	if b.rand.Float64() < b.Accuracy {
		for _, basket := range baskets {
			if basket.Kind == kind {
				return basket.Position
			}
		}
	}

	// Either a wrong basket or empty floor.
	var wrong []sorter.Basket
	for _, basket := range baskets {
		if basket.Kind != kind {
			wrong = append(wrong, basket)
		}
	}
	if len(wrong) > 0 && b.rand.IntN(2) == 0 {
		return wrong[b.rand.IntN(len(wrong))].Position
	}
	return sorter.Vec2{X: field.Width / 2, Y: field.Height - 10}
}

// Act makes at most one move on e. It returns the outcome of the drop, or
// false if the bot did nothing.
func (b *Bot) Act(e *sorter.Engine) (sorter.Outcome, bool) {
	status := e.Snapshot()
	if status.Phase != sorter.Active || status.Dragging != 0 {
		return 0, false
	}

	field := e.Config().Field
	shape, ok := b.target(status, field)
	if !ok || !e.Press(shape.Position) {
		return 0, false
	}

	// Overlapping shapes may hand us a newer one than we aimed for.
	held, ok := e.Snapshot().Shape(e.Snapshot().Dragging)
	if !ok {
		return 0, false
	}

	p := b.dropPoint(held.Kind, status.Baskets, field)
	e.Move(p)
	return e.Release(p)
}
