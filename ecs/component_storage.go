package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is a type-erased column of components inside an archetype.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage owns its registry, so independent sessions never share
// component columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage stores components of type T in fixed-size heap blocks, so a
// pointer to a live component stays valid while the storage grows. Deleted
// slots go on a free list and are handed out again by Append.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    [][blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func locate(index int) (int, int) {
	return index / blockSize, index % blockSize
}

// Append adds a component to storage and returns its index.
func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
	}

	block, slot := locate(index)
	for block >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([blockSize]T))
		cs.filled = append(cs.filled, [blockSize]bool{})
	}

	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.count++
	return index
}

// Get returns a pointer to the component at the given index, or nil.
func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	block, slot := locate(index)
	return &cs.blocks[block][slot]
}

// Delete zeroes a slot and returns it to the free list.
func (cs *blockStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	block, slot := locate(index)
	var zero T
	cs.blocks[block][slot] = zero
	cs.filled[block][slot] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	block, slot := locate(index)
	if block >= len(cs.filled) {
		return false
	}
	return cs.filled[block][slot]
}

// Len returns the number of live components.
func (cs *blockStorage[T]) Len() int {
	return cs.count
}

// Iter yields the indices of live components in slot order.
func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.Has(i) {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
