package simulate

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/shapesort/sorter"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// quickConfig finishes in a couple of real seconds.
func quickConfig() sorter.Config {
	cfg := sorter.DefaultConfig()
	cfg.SpawnX = 700
	cfg.FirstSpawnDelay = 0
	cfg.TransitionDelay = 10 * time.Millisecond
	cfg.ReturnDuration = 20 * time.Millisecond
	cfg.Levels = []sorter.Level{
		{Speed: 10, Spacing: 1000, Quota: 3},
		{Speed: 12, Spacing: 1000, Quota: 3},
	}
	return cfg
}

func TestPerfectBotWinsDefaultConfig(t *testing.T) {
	cfg := sorter.DefaultConfig()
	res, err := Run(context.Background(), cfg, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.Won)
	assert.Equal(t, sorter.Complete, res.Phase)
	assert.Equal(t, len(cfg.Levels), res.Level)

	quota := 0
	for _, l := range cfg.Levels {
		quota += l.Quota
	}
	assert.Equal(t, quota, res.Counters.Correct)
	assert.Equal(t, quota*cfg.Reward, res.Score)
	assert.Zero(t, res.Counters.Incorrect)
	assert.Zero(t, res.Counters.Miss)
	assert.Zero(t, res.Counters.Expired)

	assert.Equal(t, quota, res.Outcomes[sorter.OutcomeCorrect])
	assert.Equal(t, len(cfg.Levels), res.Outcomes[sorter.OutcomeLevelComplete])
	assert.Equal(t, 1, res.Outcomes[sorter.OutcomeWin])
}

func TestHopelessBotStillFinishes(t *testing.T) {
	opts := DefaultOptions()
	opts.Accuracy = 0

	res, err := Run(context.Background(), quickConfig(), opts)
	require.NoError(t, err)

	assert.True(t, res.Won)
	assert.Zero(t, res.Score)
	assert.Zero(t, res.Counters.Correct)
	assert.GreaterOrEqual(t, res.Counters.Expired, 6)
	assert.Positive(t, res.Counters.Incorrect+res.Counters.Miss)
}

func TestRunIsReproducible(t *testing.T) {
	opts := DefaultOptions()
	opts.Accuracy = 0.6
	opts.Seed = 42

	a, err := Run(context.Background(), quickConfig(), opts)
	require.NoError(t, err)
	b, err := Run(context.Background(), quickConfig(), opts)
	require.NoError(t, err)

	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Counters, b.Counters)
	assert.Equal(t, a.Ticks, b.Ticks)
}

func TestRunStopsAtLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.Limit = time.Second

	res, err := Run(context.Background(), sorter.DefaultConfig(), opts)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrTimeLimit))
	assert.False(t, res.Won)
	assert.Equal(t, sorter.Active, res.Phase)
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, sorter.DefaultConfig(), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfg := sorter.DefaultConfig()
	cfg.Levels = nil

	_, err := Run(context.Background(), cfg, DefaultOptions())
	assert.True(t, eris.Is(err, sorter.ErrNoLevels))
}

func TestRunManyKeepsSeedOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 10

	results, err := RunMany(context.Background(), quickConfig(), opts, 4, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, res := range results {
		assert.Equal(t, uint64(10+i), res.Seed)
		assert.True(t, res.Won)
	}
}

func TestRunRealtime(t *testing.T) {
	opts := DefaultOptions()
	opts.Frame = 2 * time.Millisecond
	opts.ReactionTicks = 5
	opts.Limit = 20 * time.Second

	res, err := RunRealtime(context.Background(), quickConfig(), opts)
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.GreaterOrEqual(t, res.Counters.Correct+res.Counters.Expired, 6)
}
