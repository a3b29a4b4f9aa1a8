package debugui

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Push records a frame of dt seconds.
func (h *FrameHistory) Push(dt float64) {
	h.samples[h.next] = float32(dt * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean of the recorded frames, or 0 before the first one.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

func (h *FrameHistory) Samples() []float32 {
	return h.samples
}
