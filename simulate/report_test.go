package simulate

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/shapesort/sorter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)

	for _, v := range []float64{4, 1, 7} {
		s.Add(v)
	}
	s.Finalize()
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 7.0, s.Max)
	assert.Equal(t, 4.0, s.Avg)
}

func TestReportGenerate(t *testing.T) {
	results := []Result{
		{Seed: 1, Won: true, Phase: sorter.Complete, Level: 3, Score: 750, Counters: sorter.Counters{Correct: 75}, Simulated: 2 * time.Minute, Wall: time.Second},
		{Seed: 2, Phase: sorter.Active, Level: 2, Score: 250, Counters: sorter.Counters{Correct: 25, Miss: 3, Expired: 10}, Simulated: time.Minute, Wall: 2 * time.Second},
	}
	opts := DefaultOptions()
	report := NewReport(results, opts, 4, 3)

	assert.Equal(t, 1, report.Wins)
	assert.Equal(t, 500.0, report.Score.Avg)
	assert.Equal(t, sorter.Counters{Correct: 100, Miss: 3, Expired: 10}, report.Totals)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Won:** 1 / 2")
	assert.Contains(t, out, "avg 500.0, min 250, max 750")
	assert.Contains(t, out, "avg 1m30s, min 1m0s, max 2m0s")
	assert.Contains(t, out, "| 1 | complete | 3 | 750 | 75 | 0 | 1s |")
	assert.Contains(t, out, "100 correct, 0 incorrect, 3 missed")
}
