package simulate

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/shapesort/sorter"
)

// Report summarises a batch of simulated sessions.
type Report struct {
	Runs     int
	Workers  int
	Accuracy float64
	Levels   int

	Results []Result
	Wins    int
	Score   Stats
	Wall    Stats
	Sim     Stats
	Totals  sorter.Counters

	TotalTime     time.Duration
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Stats is the spread of one measurement across runs.
type Stats struct {
	Min     float64
	Max     float64
	Avg     float64
	Samples []float64
}

func (s *Stats) Add(v float64) {
	s.Samples = append(s.Samples, v)
}

// Finalize computes Min, Max and Avg from the samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	s.Min, s.Max = s.Samples[0], s.Samples[0]
	var total float64
	for _, v := range s.Samples {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		total += v
	}
	s.Avg = total / float64(len(s.Samples))
}

// NewReport folds results into a report.
func NewReport(results []Result, opts Options, workers, levels int) *Report {
	r := &Report{
		Runs:     len(results),
		Workers:  workers,
		Accuracy: opts.Accuracy,
		Levels:   levels,
		Results:  results,
	}
	for _, res := range results {
		if res.Won {
			r.Wins++
		}
		r.Score.Add(float64(res.Score))
		r.Wall.Add(float64(res.Wall))
		r.Sim.Add(float64(res.Simulated))
		r.Totals.Correct += res.Counters.Correct
		r.Totals.Incorrect += res.Counters.Incorrect
		r.Totals.Miss += res.Counters.Miss
		r.Totals.Expired += res.Counters.Expired
	}
	r.Score.Finalize()
	r.Wall.Finalize()
	r.Sim.Finalize()
	return r
}

const reportTemplate = `# Simulation Report

## Configuration
- **Runs:** {{.Runs}} ({{.Workers}} workers)
- **Bot accuracy:** {{printf "%.2f" .Accuracy}}
- **Levels:** {{.Levels}}

## Results
- **Won:** {{.Wins}} / {{.Runs}}
- **Score:** avg {{printf "%.1f" .Score.Avg}}, min {{printf "%.0f" .Score.Min}}, max {{printf "%.0f" .Score.Max}}
- **Session length:** avg {{dur .Sim.Avg}}, min {{dur .Sim.Min}}, max {{dur .Sim.Max}}
- **Drops:** {{.Totals.Correct}} correct, {{.Totals.Incorrect}} incorrect, {{.Totals.Miss}} missed
- **Expired:** {{.Totals.Expired}}

## Runs
| seed | phase | level | score | correct | expired | wall |
|------|-------|-------|-------|---------|---------|------|
{{range .Results}}| {{.Seed}} | {{.Phase}} | {{.Level}} | {{.Score}} | {{.Counters.Correct}} | {{.Counters.Expired}} | {{.Wall}} |
{{end}}
## Cost
- **Total time:** {{.TotalTime}}
- **Wall per run:** avg {{dur .Wall.Avg}}, max {{dur .Wall.Max}}
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"dur": func(ns float64) string {
		return time.Duration(ns).Round(time.Millisecond).String()
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
