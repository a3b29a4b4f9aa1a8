package ecs

import (
	"time"
)

type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

type StorageStats struct {
	TotalEntityCount   int
	ArchetypeCount     int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// CollectStats walks the storage and summarises its contents. Empty
// archetypes are still counted.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.order),
		SingletonCount: len(s.singletons),
	}

	for _, archetype := range s.order {
		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}

		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}

	return stats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	TotalDuration  time.Duration
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
}

type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

func (st *SystemStats) record(d time.Duration) {
	st.ExecutionCount++
	st.TotalDuration += d
	st.LastDuration = d
	if st.MinDuration == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	if d > st.MaxDuration {
		st.MaxDuration = d
	}
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}
