// Package audio synthesizes the game's sound cues.
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/shapesort/sorter"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

const maxCueLength = 5 * time.Second

const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
	noteE6 = 1318.51
	noteA3 = 220.00
	noteA4 = 440.00
	noteE4 = 329.63
)

// Streamer returns a fresh streamer for the cue of outcome o, or nil for an
// outcome without sound.
func Streamer(o sorter.Outcome, volume float64) beep.Streamer {
	var s beep.Streamer
	switch o {
	case sorter.OutcomeCorrect:
		s = beep.Mix(
			Melody(SampleRate,
				Note{Freq: noteC6, Duration: 70 * time.Millisecond, Wave: Sine, Gain: 0.6},
				Note{Freq: noteE6, Duration: 140 * time.Millisecond, Wave: Sine, Gain: 0.6},
			),
			Melody(SampleRate,
				Note{Freq: 2 * noteC6, Duration: 70 * time.Millisecond, Wave: Sine, Gain: 0.2},
				Note{Freq: 2 * noteE6, Duration: 140 * time.Millisecond, Wave: Sine, Gain: 0.2},
			),
		)
	case sorter.OutcomeIncorrect:
		s = Melody(SampleRate,
			Note{Freq: 140, Duration: 90 * time.Millisecond, Wave: Saw, Gain: 0.35},
			Note{Freq: 110, Duration: 160 * time.Millisecond, Wave: Saw, Gain: 0.35},
		)
	case sorter.OutcomeMiss:
		s = Melody(SampleRate,
			Note{Freq: noteA4, Duration: 60 * time.Millisecond, Wave: Triangle, Gain: 0.4},
			Note{Freq: noteE4, Duration: 120 * time.Millisecond, Wave: Triangle, Gain: 0.4},
		)
	case sorter.OutcomeLevelComplete:
		s = Melody(SampleRate,
			Note{Freq: noteC5, Duration: 110 * time.Millisecond, Wave: Square, Gain: 0.2},
			Note{Freq: noteE5, Duration: 110 * time.Millisecond, Wave: Square, Gain: 0.2},
			Note{Freq: noteG5, Duration: 110 * time.Millisecond, Wave: Square, Gain: 0.2},
			Note{Freq: noteC6, Duration: 260 * time.Millisecond, Wave: Square, Gain: 0.2},
		)
	case sorter.OutcomeWin:
		s = beep.Seq(
			Melody(SampleRate,
				Note{Freq: noteC5, Duration: 120 * time.Millisecond, Wave: Square, Gain: 0.2},
				Note{Freq: noteE5, Duration: 120 * time.Millisecond, Wave: Square, Gain: 0.2},
				Note{Freq: noteG5, Duration: 120 * time.Millisecond, Wave: Square, Gain: 0.2},
			),
			Chord(SampleRate,
				Note{Freq: noteA3, Duration: 600 * time.Millisecond, Wave: Triangle, Gain: 0.3},
				Note{Freq: noteC6, Duration: 600 * time.Millisecond, Wave: Sine, Gain: 0.3},
				Note{Freq: noteE6, Duration: 600 * time.Millisecond, Wave: Sine, Gain: 0.2},
			),
		)
	default:
		return nil
	}
	return Gain(s, volume)
}

// Render drains s into 16-bit little-endian stereo PCM, the format
// ebiten's audio players take. Output is capped at five seconds.
func Render(s beep.Streamer) []byte {
	if s == nil {
		return nil
	}

	limit := SampleRate.N(maxCueLength)
	buf := make([][2]float64, 512)
	out := make([]byte, 0, SampleRate.N(time.Second)*4)

	for written := 0; written < limit; {
		n, ok := s.Stream(buf[:min(len(buf), limit-written)])
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		written += n
		if !ok {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = max(-1, min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// Bank holds a rendered cue per outcome.
type Bank struct {
	pcm map[sorter.Outcome][]byte
}

var outcomes = []sorter.Outcome{
	sorter.OutcomeCorrect,
	sorter.OutcomeIncorrect,
	sorter.OutcomeMiss,
	sorter.OutcomeLevelComplete,
	sorter.OutcomeWin,
}

// NewBank renders every cue at volume, a linear gain in (0, 1].
func NewBank(volume float64) *Bank {
	b := &Bank{pcm: make(map[sorter.Outcome][]byte, len(outcomes))}
	for _, o := range outcomes {
		b.pcm[o] = Render(Streamer(o, volume))
	}
	return b
}

// PCM returns the rendered cue for o, or nil.
func (b *Bank) PCM(o sorter.Outcome) []byte {
	return b.pcm[o]
}

// Duration is the play length of the cue for o.
func (b *Bank) Duration(o sorter.Outcome) time.Duration {
	return time.Duration(len(b.pcm[o])/4) * time.Second / time.Duration(SampleRate)
}
