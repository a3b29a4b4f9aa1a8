package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Triangle
)

type oscillator struct {
	freq     float64
	phase    float64
	position int
	total    int
	wave     Wave
	rate     beep.SampleRate
}

// Tone returns a streamer playing freq for d.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:  freq,
		total: rate.N(d),
		wave:  wave,
		rate:  rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case Sine:
			val = math.Sin(2 * math.Pi * o.phase)
		case Square:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case Saw:
			val = 2 * (o.phase - 0.5)
		case Triangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps a streamer in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func Envelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) gain() float64 {
	g := 1.0
	if e.attack > 0 && e.position < e.attack {
		g = float64(e.position) / float64(e.attack)
	}
	if fromEnd := e.total - e.position; e.release > 0 && fromEnd < e.release {
		g = min(g, max(0, float64(fromEnd)/float64(e.release)))
	}
	return g
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Gain scales s linearly. Zero or less silences it.
func Gain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Note is one enveloped tone.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Gain     float64
}

func (n Note) streamer(rate beep.SampleRate) beep.Streamer {
	attack := min(5*time.Millisecond, n.Duration/4)
	release := n.Duration / 3
	return Gain(Envelope(Tone(n.Freq, n.Duration, n.Wave, rate), n.Duration, attack, release, rate), n.Gain)
}

// Melody plays notes one after another.
func Melody(rate beep.SampleRate, notes ...Note) beep.Streamer {
	streamers := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		streamers[i] = n.streamer(rate)
	}
	return beep.Seq(streamers...)
}

// Chord plays notes together.
func Chord(rate beep.SampleRate, notes ...Note) beep.Streamer {
	streamers := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		streamers[i] = n.streamer(rate)
	}
	return beep.Mix(streamers...)
}
