package sorter

import "sync"

// Presenter receives cues from the engine. Calls are made with the engine
// lock held, in the order the engine changes state, so implementations must
// not call back into the Engine.
type Presenter interface {
	// Spawn announces a new carrier and the shape riding it.
	Spawn(carrier CarrierID, kind ShapeKind, carrierPos, shapePos Vec2)
	Move(h Handle, p Vec2)
	// Restack changes the draw depth of a shape.
	Restack(h Handle, depth int)
	// Consume is sent right before a matched shape is removed.
	Consume(h Handle, p Vec2)
	Play(o Outcome)
	Remove(h Handle)
}

// NopPresenter ignores every cue.
type NopPresenter struct{}

func (NopPresenter) Spawn(CarrierID, ShapeKind, Vec2, Vec2) {}
func (NopPresenter) Move(Handle, Vec2)                     {}
func (NopPresenter) Restack(Handle, int)                   {}
func (NopPresenter) Consume(Handle, Vec2)                  {}
func (NopPresenter) Play(Outcome)                          {}
func (NopPresenter) Remove(Handle)                         {}

// Presenters fans every cue out to each element in order.
type Presenters []Presenter

func (ps Presenters) Spawn(carrier CarrierID, kind ShapeKind, carrierPos, shapePos Vec2) {
	for _, p := range ps {
		p.Spawn(carrier, kind, carrierPos, shapePos)
	}
}

func (ps Presenters) Move(h Handle, pos Vec2) {
	for _, p := range ps {
		p.Move(h, pos)
	}
}

func (ps Presenters) Restack(h Handle, depth int) {
	for _, p := range ps {
		p.Restack(h, depth)
	}
}

func (ps Presenters) Consume(h Handle, pos Vec2) {
	for _, p := range ps {
		p.Consume(h, pos)
	}
}

func (ps Presenters) Play(o Outcome) {
	for _, p := range ps {
		p.Play(o)
	}
}

func (ps Presenters) Remove(h Handle) {
	for _, p := range ps {
		p.Remove(h)
	}
}

type CueOp uint8

const (
	CueSpawn CueOp = iota + 1
	CueMove
	CueRestack
	CueConsume
	CuePlay
	CueRemove
)

// Cue is one recorded Presenter call. Only the fields relevant to Op are set.
type Cue struct {
	Op      CueOp
	Handle  Handle
	Kind    ShapeKind
	Pos     Vec2
	Depth   int
	Outcome Outcome
}

// Recorder keeps every cue except moves, which it only counts. It is safe
// for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	cues  []Cue
	moves int
}

func (r *Recorder) add(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

func (r *Recorder) Spawn(carrier CarrierID, kind ShapeKind, _, shapePos Vec2) {
	r.add(Cue{Op: CueSpawn, Handle: carrierHandle(carrier), Kind: kind, Pos: shapePos})
}

func (r *Recorder) Move(Handle, Vec2) {
	r.mu.Lock()
	r.moves++
	r.mu.Unlock()
}

func (r *Recorder) Restack(h Handle, depth int) {
	r.add(Cue{Op: CueRestack, Handle: h, Depth: depth})
}

func (r *Recorder) Consume(h Handle, p Vec2) {
	r.add(Cue{Op: CueConsume, Handle: h, Pos: p})
}

func (r *Recorder) Play(o Outcome) {
	r.add(Cue{Op: CuePlay, Outcome: o})
}

func (r *Recorder) Remove(h Handle) {
	r.add(Cue{Op: CueRemove, Handle: h})
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Outcomes returns the recorded Play cues in order.
func (r *Recorder) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Outcome
	for _, c := range r.cues {
		if c.Op == CuePlay {
			out = append(out, c.Outcome)
		}
	}
	return out
}

// Count returns how many cues of op were seen.
func (r *Recorder) Count(op CueOp) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if op == CueMove {
		return r.moves
	}
	n := 0
	for _, c := range r.cues {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = nil
	r.moves = 0
	r.mu.Unlock()
}
