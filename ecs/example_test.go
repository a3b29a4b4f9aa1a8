package ecs_test

import (
	"fmt"

	"github.com/plus3/shapesort/ecs"
)

type Drift struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *Drift) Execute(frame *ecs.UpdateFrame) {
	for e := range s.Entities.Values() {
		e.Position.X += e.Velocity.DX * frame.DeltaTime
	}
}

func ExampleScheduler() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 0}, Velocity{DX: 2})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&Drift{})
	scheduler.Once(0.5)
	scheduler.Once(0.5)

	for e := range ecs.NewView[struct{ *Position }](storage).Values() {
		fmt.Println(e.Position.X)
	}
	// Output: 2
}

func ExampleEntityRef() {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Label{Value: "held"})
	ref := storage.CreateEntityRef(id)

	fmt.Println(ref.Alive())
	storage.Delete(id)
	fmt.Println(ref.Alive())
	// Output:
	// true
	// false
}
