package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/shapesort/ecs"
	"github.com/plus3/shapesort/sorter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label struct {
	Text string
}

type gauge struct {
	Level   int8
	Count   uint16
	Ratio   float64
	On      bool
	Name    string
	Wait    time.Duration
	Owner   *ecs.EntityRef
	private int
}

func newTestStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[label](registry)
	ecs.RegisterComponent[gauge](registry)
	return ecs.NewStorage(registry)
}

func TestCollectEntities(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(label{Text: "a"})
	b := storage.Spawn(label{Text: "b"}, gauge{})
	c := storage.Spawn(label{Text: "c"})
	storage.Delete(c)

	entities := collectEntities(storage)
	require.Len(t, entities, 2)
	assert.Equal(t, a, entities[0].ID)
	assert.Equal(t, []string{"debugui.label"}, entities[0].Components)
	assert.Equal(t, b, entities[1].ID)
	assert.Len(t, entities[1].Components, 2)
}

func TestSortAndFilterEntities(t *testing.T) {
	entities := []EntityInfo{
		{ID: 3, ArchetypeID: 0xb, Components: []string{"sorter.Shape"}},
		{ID: 1, ArchetypeID: 0xa, Components: []string{"sorter.Carrier"}},
		{ID: 2, ArchetypeID: 0xc, Components: []string{"sorter.Tween"}},
	}

	sortEntities(entities, columnID, true)
	assert.Equal(t, ecs.EntityId(1), entities[0].ID)

	sortEntities(entities, columnArchetype, false)
	assert.Equal(t, uint32(0xc), entities[0].ArchetypeID)

	sortEntities(entities, columnComponents, true)
	assert.Equal(t, "sorter.Carrier", entities[0].Components[0])

	assert.Len(t, filterEntities(entities, ""), 3)
	assert.Len(t, filterEntities(entities, "SHAPE"), 1)
	assert.Len(t, filterEntities(entities, "0xa"), 1)
	assert.Empty(t, filterEntities(entities, "nothing"))
}

func TestReflectionCacheSkipsUnexported(t *testing.T) {
	cache := NewReflectionCache()
	fields := cache.GetFields(reflect.TypeOf(gauge{}))

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Level", "Count", "Ratio", "On", "Name", "Wait", "Owner"}, names)
	assert.True(t, fields[6].IsPointer)
	assert.Equal(t, reflect.TypeOf(ecs.EntityRef{}), fields[6].Type)

	assert.Same(t, &fields[0], &cache.GetFields(reflect.TypeOf(gauge{}))[0])
	assert.Nil(t, cache.GetFields(reflect.TypeOf(0)))
}

func TestAssign(t *testing.T) {
	var g gauge
	v := reflect.ValueOf(&g).Elem()

	assert.True(t, assign(v.Field(0), int64(-5)))
	assert.False(t, assign(v.Field(0), int64(300)), "overflows int8")
	assert.True(t, assign(v.Field(1), int64(65535)))
	assert.False(t, assign(v.Field(1), int64(-1)))
	assert.True(t, assign(v.Field(2), 0.5))
	assert.True(t, assign(v.Field(3), true))
	assert.True(t, assign(v.Field(4), "x"))
	assert.False(t, assign(v.Field(4), true), "kind mismatch")
	assert.False(t, assign(v.Field(7), int64(1)), "unexported")
	assert.False(t, assign(reflect.ValueOf(g).Field(0), int64(1)), "not addressable")

	assert.Equal(t, gauge{Level: -5, Count: 65535, Ratio: 0.5, On: true, Name: "x"}, g)
}

func TestAssignThroughStorage(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(gauge{Ratio: 1})

	component := storage.GetComponent(id, reflect.TypeOf(gauge{}))
	require.NotNil(t, component)
	require.True(t, assign(reflect.ValueOf(component).Elem().Field(2), 2.5))

	assert.Equal(t, 2.5, ecs.ReadComponent[gauge](storage, id).Ratio)
}

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Zero(t, h.Average())

	h.Push(0.010)
	assert.InDelta(t, 10, h.Average(), 1e-4)

	h.Push(0.020)
	h.Push(0.030)
	h.Push(0.040)
	assert.InDelta(t, 30, h.Average(), 1e-4)
	assert.Len(t, h.Samples(), 3)
}

func TestHiddenOverlayRendersNothing(t *testing.T) {
	engine, err := sorter.New(sorter.DefaultConfig())
	require.NoError(t, err)

	overlay := NewOverlay(engine)
	assert.False(t, overlay.Visible())

	// A hidden overlay never touches ImGui, so this runs without a context.
	overlay.Update(0.016)
	assert.False(t, overlay.WantsPointer())
	assert.InDelta(t, 16, overlay.frames.Average(), 1e-3)

	overlay.Toggle()
	assert.True(t, overlay.Visible())
	overlay.Toggle()
	assert.False(t, overlay.Visible())
}

func TestOverlaySpawnsPanels(t *testing.T) {
	engine, err := sorter.New(sorter.DefaultConfig())
	require.NoError(t, err)

	overlay := NewOverlay(engine)
	var names []string
	for _, e := range collectEntities(overlay.storage) {
		item := ecs.ReadComponent[ImguiItem](overlay.storage, e.ID)
		require.NotNil(t, item)
		names = append(names, item.Name)
	}
	assert.ElementsMatch(t, []string{"session", "entities", "inspector"}, names)
}
