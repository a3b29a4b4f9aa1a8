package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iface mirrors the two-word runtime layout of an interface value. Component
// pointers are copied out of its data word.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// View reads a fixed combination of components per entity. T is a struct of
// pointer fields, one per component type. Embedded fields are required; named
// fields tagged `ecs:"optional"` are set to nil when the entity lacks them.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView builds the field layout for T. It panics when T is not a struct of
// pointer fields.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.optional = append(v.optional, isOptional)
	}

	return v
}

func (v *View[T]) setField(structPtr unsafe.Pointer, i int, component any) {
	fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])
	if component == nil {
		*(*unsafe.Pointer)(fieldPtr) = nil
		return
	}
	*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
}

// Fill points the fields of ptr at the components of id. Returns false if the
// entity is gone or misses a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Contains(id.Index()) {
		return false
	}

	structPtr := unsafe.Pointer(ptr)
	for i, componentType := range v.types {
		component := archetype.GetComponent(id.Index(), componentType)
		if component == nil && !v.optional[i] {
			return false
		}
		v.setField(structPtr, i, component)
	}
	return true
}

// Get returns a populated view for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get through a weak reference.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	entityId, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(entityId)
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, requiredType := range v.types {
		if !v.optional[i] && !archetype.HasComponent(requiredType) {
			return false
		}
	}
	return true
}

func (v *View[T]) columns(archetype *Archetype) []int {
	cols := make([]int, len(v.types))
	for i, componentType := range v.types {
		cols[i] = archetype.column(componentType)
	}
	return cols
}

// Iter yields every matching entity, archetypes in creation order and slots
// in index order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matchesArchetype(archetype) {
				continue
			}

			cols := v.columns(archetype)
			var result T
			resultPtr := unsafe.Pointer(&result)

			for entityId := range archetype.Iter() {
				for i, col := range cols {
					var component any
					if col >= 0 {
						component = archetype.storages[col].Get(int(entityId.Index()))
					}
					v.setField(resultPtr, i, component)
				}
				if !yield(entityId, result) {
					return
				}
			}
		}
	}
}

// Values is Iter without the entity IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for _, archetype := range v.storage.order {
		if v.matchesArchetype(archetype) {
			n += archetype.Len()
		}
	}
	return n
}
