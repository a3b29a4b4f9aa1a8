package ecs

import (
	"iter"
)

// Query is a View whose results are snapshotted once per frame. The
// Scheduler calls Execute before the owning system runs; systems then range
// over Iter or Values as often as they like.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	archetypes []*Archetype
	seen       int

	entities   []EntityId
	components []T
	executed   bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage. Called by the Scheduler on Register.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.seen = 0
	q.executed = false
}

// Execute rebuilds the snapshot.
func (q *Query[T]) Execute() {
	// Archetypes are only ever appended, so scanning the new tail is enough.
	for _, archetype := range q.storage.order[q.seen:] {
		if q.view.matchesArchetype(archetype) {
			q.archetypes = append(q.archetypes, archetype)
		}
	}
	q.seen = len(q.storage.order)

	q.entities = q.entities[:0]
	q.components = q.components[:0]
	for _, archetype := range q.archetypes {
		for id := range archetype.Iter() {
			var item T
			if !q.view.Fill(id, &item) {
				continue
			}
			q.entities = append(q.entities, id)
			q.components = append(q.components, item)
		}
	}

	q.executed = true
}

// Len returns the size of the current snapshot.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// Iter yields the snapshot. Panics if Execute has never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.executed {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Values yields the snapshot without IDs. Panics if Execute has never run.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.executed {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}
