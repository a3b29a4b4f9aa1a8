package ecs

// EntityId packs the archetype ID into the upper 32 bits and the slot index
// into the lower 32 bits. Slot indices are recycled after a delete, so an
// EntityId held across frames can end up naming a different entity; hold an
// EntityRef when the reference has to survive deletes.
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID and entity index
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the entity index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a weak, stable reference to an entity. The storage zeroes Id
// and Archetype when the entity is deleted, so holders can detect that the
// entity is gone without keeping it alive.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Alive reports whether the referenced entity still exists.
func (r *EntityRef) Alive() bool {
	return r != nil && r.Id != 0
}
