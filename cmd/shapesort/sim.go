package main

import (
	"os"
	"runtime"
	"time"

	"github.com/plus3/shapesort/simulate"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

func newSimCmd(a *app) *cobra.Command {
	opts := simulate.DefaultOptions()
	var (
		runs     int
		workers  int
		realtime bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Play sessions with a bot and print a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if runs < 1 {
				return eris.New("--runs must be at least 1")
			}
			if opts.Accuracy < 0 || opts.Accuracy > 1 {
				return eris.Errorf("--accuracy %v is outside [0, 1]", opts.Accuracy)
			}

			opts.Seed = a.seedOr()
			opts.Logger = a.log
			var memStart runtime.MemStats
			runtime.ReadMemStats(&memStart)
			start := time.Now()

			a.log.Info().Int("runs", runs).Float64("accuracy", opts.Accuracy).Bool("realtime", realtime).Msg("simulating")

			var results []simulate.Result
			if realtime {
				for i := range runs {
					run := opts
					run.Seed = opts.Seed + uint64(i)
					res, err := simulate.RunRealtime(cmd.Context(), cfg, run)
					results = append(results, res)
					if err != nil {
						a.log.Warn().Err(err).Uint64("seed", run.Seed).Msg("run did not finish")
					}
				}
			} else {
				results, err = simulate.RunMany(cmd.Context(), cfg, opts, runs, workers)
				if err != nil {
					a.log.Warn().Err(err).Msg("some runs did not finish")
				}
			}

			report := simulate.NewReport(results, opts, max(workers, 1), len(cfg.Levels))
			report.TotalTime = time.Since(start)
			report.MemStatsStart = memStart
			runtime.ReadMemStats(&report.MemStatsEnd)

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return eris.Wrap(err, "create report")
				}
				defer f.Close()
				out = f
			}
			return report.Generate(out)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&runs, "runs", "n", 1, "number of sessions")
	flags.IntVarP(&workers, "workers", "w", runtime.NumCPU(), "sessions played at once")
	flags.Float64Var(&opts.Accuracy, "accuracy", opts.Accuracy, "chance the bot picks the right basket")
	flags.IntVar(&opts.ReactionTicks, "reaction", opts.ReactionTicks, "ticks between bot moves")
	flags.DurationVar(&opts.Frame, "frame", opts.Frame, "simulated time per tick")
	flags.DurationVar(&opts.Limit, "limit", opts.Limit, "give up after this much session time")
	flags.BoolVar(&realtime, "realtime", false, "run on the wall clock, one session at a time")
	flags.StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}
