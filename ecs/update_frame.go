package ecs

// UpdateFrame is handed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	// DeltaTime is the frame length in seconds.
	DeltaTime float64
	// Tick counts frames since the scheduler was created, starting at 1.
	Tick uint64
	// Elapsed is the sum of all DeltaTime values so far, this frame included.
	Elapsed  float64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, tick uint64, elapsed float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Elapsed:   elapsed,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
