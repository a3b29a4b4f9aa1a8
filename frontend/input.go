package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/shapesort/sorter"
)

type pointerPhase uint8

const (
	pointerPress pointerPhase = iota + 1
	pointerMove
	pointerRelease
)

type pointerEvent struct {
	phase pointerPhase
	pos   sorter.Vec2
}

// pointer turns per-tick samples of one pointer into press, move and
// release events.
type pointer struct {
	down bool
	last sorter.Vec2
}

func (p *pointer) sample(down bool, pos sorter.Vec2) (pointerEvent, bool) {
	defer func() {
		p.down = down
		p.last = pos
	}()

	switch {
	case down && !p.down:
		return pointerEvent{phase: pointerPress, pos: pos}, true
	case down && pos != p.last:
		return pointerEvent{phase: pointerMove, pos: pos}, true
	case !down && p.down:
		return pointerEvent{phase: pointerRelease, pos: pos}, true
	}
	return pointerEvent{}, false
}

// input reads the mouse, or the first finger while one is down.
type input struct {
	pointer
	touch    ebiten.TouchID
	touching bool
}

func vec(x, y int) sorter.Vec2 {
	return sorter.Vec2{X: float64(x), Y: float64(y)}
}

// poll samples ebiten's input state for this tick.
func (in *input) poll() (pointerEvent, bool) {
	if !in.touching {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			in.touch, in.touching = ids[0], true
		}
	}

	if in.touching {
		if inpututil.IsTouchJustReleased(in.touch) {
			in.touching = false
			return in.sample(false, vec(inpututil.TouchPositionInPreviousTick(in.touch)))
		}
		return in.sample(true, vec(ebiten.TouchPosition(in.touch)))
	}

	return in.sample(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), vec(ebiten.CursorPosition()))
}
