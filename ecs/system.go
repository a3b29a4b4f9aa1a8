package ecs

// System is one step of a frame. Query and Singleton fields on a system
// struct are bound to the storage by Scheduler.Register, and queries are
// executed right before the system runs.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }
