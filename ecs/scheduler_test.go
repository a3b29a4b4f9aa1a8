package ecs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/plus3/shapesort/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type integrateSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
	}]
	Clock ecs.Singleton[Clock]
}

func (s *integrateSystem) Execute(frame *ecs.UpdateFrame) {
	s.Clock.Get().Ticks++
	for m := range s.Movers.Values() {
		m.Position.X += m.Velocity.DX * frame.DeltaTime
	}
}

type spawnerSystem struct {
	spawned int
}

func (s *spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{}, Velocity{DX: 1})
	s.spawned++
}

func TestSchedulerBindsFieldsAndRunsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Clock{})

	scheduler := ecs.NewScheduler(storage)
	integrate := &integrateSystem{}
	spawner := &spawnerSystem{}
	scheduler.Register(spawner)
	scheduler.Register(integrate)

	scheduler.Once(1)
	// The first spawn is flushed after the frame, so nothing moved yet.
	assert.Equal(t, 1, integrate.Clock.Get().Ticks)

	scheduler.Once(1)
	scheduler.Once(1)

	var xs []float64
	for m := range ecs.NewView[struct{ *Position }](storage).Values() {
		xs = append(xs, m.Position.X)
	}
	assert.Equal(t, []float64{2, 1, 0}, xs)
	assert.Equal(t, 3, spawner.spawned)
}

func TestSchedulerFrameCounters(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	var frames []ecs.UpdateFrame
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frames = append(frames, *frame)
	}))

	scheduler.Once(0.5)
	scheduler.Once(0.25)

	require.Len(t, frames, 2)
	assert.Equal(t, uint64(1), frames[0].Tick)
	assert.Equal(t, uint64(2), frames[1].Tick)
	assert.InDelta(t, 0.75, frames[1].Elapsed, 1e-9)
}

type sleepySystem struct {
	dur time.Duration
}

func (s *sleepySystem) Execute(*ecs.UpdateFrame) { time.Sleep(s.dur) }

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	stats := scheduler.GetStats()
	assert.Zero(t, stats.SystemCount)

	scheduler.Register(&sleepySystem{dur: time.Millisecond})
	scheduler.Register(&sleepySystem{dur: 2 * time.Millisecond})
	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, int64(3), stats.Frames)

	for _, sys := range stats.Systems {
		assert.Equal(t, "sleepySystem", sys.Name)
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.LessOrEqual(t, sys.MinDuration, sys.AvgDuration)
		assert.LessOrEqual(t, sys.AvgDuration, sys.MaxDuration)
		assert.NotZero(t, sys.LastDuration)
	}
}

type lockRecorder struct {
	sync.Mutex
	locks int
}

func (l *lockRecorder) Lock() {
	l.Mutex.Lock()
	l.locks++
}

func TestSchedulerGuardAndRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))
	guard := &lockRecorder{}
	scheduler.SetGuard(guard)

	ran := make(chan struct{}, 16)
	scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- scheduler.Run(ctx, time.Millisecond) }()

	<-ran
	<-ran
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	guard.Mutex.Lock()
	assert.GreaterOrEqual(t, guard.locks, 2)
	guard.Mutex.Unlock()
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	doomed := storage.Spawn(Position{X: 1})

	scheduler := ecs.NewScheduler(storage)
	var log []string
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {
			log = append(log, "defer")
			assert.False(t, storage.Alive(doomed))
			frame.Commands.Spawn(Label{Value: "late"})
		})
		frame.Commands.Delete(doomed)
		frame.Commands.Spawn(Position{X: 2}, Velocity{})
		assert.Equal(t, 3, frame.Commands.Pending())
		assert.True(t, storage.Alive(doomed))
	}))

	scheduler.Once(0)

	assert.Equal(t, []string{"defer"}, log)
	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.TotalEntityCount)
}
