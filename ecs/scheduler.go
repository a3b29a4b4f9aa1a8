package ecs

import (
	"context"
	"reflect"
	"sync"
	"time"
)

type storageBinder interface {
	Init(storage *Storage)
}

type executor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executor
	stats   SystemStats
}

// Scheduler runs registered systems in registration order, one frame per
// Once call.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
	guard   sync.Locker

	tick    uint64
	elapsed float64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		guard:   noLock{},
	}
}

// SetGuard makes Once hold l for the whole frame, including the command
// flush. Code that touches the storage between frames takes the same lock.
func (s *Scheduler) SetGuard(l sync.Locker) {
	if l == nil {
		l = noLock{}
	}
	s.guard = l
}

// Register adds a system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	entry := &registeredSystem{
		system: system,
		stats:  SystemStats{Name: systemName(system)},
	}

	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() || field.Kind() != reflect.Struct {
				continue
			}

			binder, ok := field.Addr().Interface().(storageBinder)
			if !ok {
				continue
			}
			binder.Init(s.storage)

			if q, ok := binder.(executor); ok {
				entry.queries = append(entry.queries, q)
			}
		}
	}

	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// Once runs every system once with a frame of dt seconds, then flushes the
// frame's commands.
func (s *Scheduler) Once(dt float64) {
	s.guard.Lock()
	defer s.guard.Unlock()

	s.tick++
	s.elapsed += dt
	frame := newUpdateFrame(dt, s.tick, s.elapsed, s.storage)

	for _, entry := range s.systems {
		start := time.Now()
		for _, q := range entry.queries {
			q.Execute()
		}
		entry.system.Execute(frame)
		entry.stats.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
}

// Run calls Once on every tick of interval until ctx is cancelled. dt is the
// measured wall time between ticks.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns a copy of the execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      int64(s.tick),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, entry := range s.systems {
		stats.Systems[i] = entry.stats
		stats.TotalExecutions += entry.stats.ExecutionCount
	}
	return stats
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
