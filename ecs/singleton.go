package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton gives direct access to a value that belongs to the world rather
// than to an entity, such as session state or settings.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns an accessor for T, creating the value from initializer
// (or the zero value) when storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. Called by the Scheduler on Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	if entry := storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	}
}

// Get returns the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil && s.storage != nil {
		s.Init(s.storage)
	}
	return (*T)(s.ptr)
}

