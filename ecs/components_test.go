package ecs_test

import "github.com/plus3/shapesort/ecs"

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Label struct {
	Value string
}

type Counter int

type Clock struct {
	Ticks int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Counter](registry)
	return registry
}
