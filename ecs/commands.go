package ecs

// Commands buffers structural changes made while systems run. The Scheduler
// flushes it after the last system of a frame: deletes first, then spawns,
// then deferred functions in the order they were queued.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after the queued deletes and spawns.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies every queued operation to storage and resets the buffer.
// Work queued by a deferred function is applied in a further round.
func (c *Commands) Flush(storage *Storage) {
	for c.Pending() > 0 {
		deletes, spawns, defers := c.deletes, c.spawns, c.defers
		c.deletes, c.spawns, c.defers = nil, nil, nil

		for _, id := range deletes {
			storage.Delete(id)
		}
		for _, components := range spawns {
			storage.Spawn(components...)
		}
		for _, fn := range defers {
			fn()
		}
	}
}
