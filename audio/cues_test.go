package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/plus3/shapesort/sorter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peak(pcm []byte) int {
	p := 0
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if v < 0 {
			v = -v
		}
		p = max(p, v)
	}
	return p
}

func TestBankRendersEveryCue(t *testing.T) {
	bank := NewBank(1)

	for _, o := range outcomes {
		t.Run(o.String(), func(t *testing.T) {
			pcm := bank.PCM(o)
			require.NotEmpty(t, pcm)
			assert.Zero(t, len(pcm)%4, "whole stereo frames")
			assert.Greater(t, peak(pcm), 0)
			assert.Less(t, bank.Duration(o), time.Second+time.Millisecond)
		})
	}

	assert.Nil(t, bank.PCM(sorter.Outcome(0)))
}

func TestCueLength(t *testing.T) {
	pcm := Render(Streamer(sorter.OutcomeCorrect, 1))
	want := SampleRate.N(70*time.Millisecond) + SampleRate.N(140*time.Millisecond)
	assert.Equal(t, want*4, len(pcm))

	assert.Greater(t, len(Render(Streamer(sorter.OutcomeWin, 1))), len(Render(Streamer(sorter.OutcomeLevelComplete, 1))))
}

func TestVolumeScalesOutput(t *testing.T) {
	loud := peak(Render(Streamer(sorter.OutcomeIncorrect, 1)))
	quiet := peak(Render(Streamer(sorter.OutcomeIncorrect, 0.25)))
	silent := peak(Render(Streamer(sorter.OutcomeIncorrect, 0)))

	assert.Less(t, quiet, loud)
	assert.Zero(t, silent)
}

func TestStreamerUnknownOutcome(t *testing.T) {
	assert.Nil(t, Streamer(sorter.Outcome(99), 1))
	assert.Nil(t, Render(nil))
}

func TestOscillatorStaysInRange(t *testing.T) {
	for _, w := range []Wave{Sine, Square, Saw, Triangle} {
		s := Tone(440, 20*time.Millisecond, w, SampleRate)
		buf := make([][2]float64, 2048)
		n, ok := s.Stream(buf)
		require.True(t, ok)
		assert.Equal(t, SampleRate.N(20*time.Millisecond), n)
		for _, f := range buf[:n] {
			assert.GreaterOrEqual(t, f[0], -1.0)
			assert.LessOrEqual(t, f[0], 1.0)
		}

		n, ok = s.Stream(buf)
		assert.Zero(t, n)
		assert.False(t, ok)
	}
}

func TestEnvelopeRamps(t *testing.T) {
	d := 100 * time.Millisecond
	s := Envelope(Tone(0, d, Square, SampleRate), d, 10*time.Millisecond, 10*time.Millisecond, SampleRate)

	buf := make([][2]float64, SampleRate.N(d))
	n, _ := s.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Zero(t, buf[0][0])
	assert.InDelta(t, 1.0, buf[n/2][0], 1e-9)
	assert.Less(t, buf[n-1][0], 0.01)
}
