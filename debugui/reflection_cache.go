package debugui

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// ReflectionCache remembers the exported fields of struct types so the
// inspector doesn't walk them every frame.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// GetFields returns the exported fields of t, or nil if t is not a struct.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			ft := f.Type
			isPointer := ft.Kind() == reflect.Pointer
			if isPointer {
				ft = ft.Elem()
			}
			fields = append(fields, FieldInfo{
				Name:      f.Name,
				Type:      ft,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	rc.fields[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()
