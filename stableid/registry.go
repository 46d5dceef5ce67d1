// Package stableid implements the process-wide bidirectional map between
// runtime entity handles (bytearena/ecs entity ids) and stable, save/load
// surviving 64-bit identifiers (spec.md §4.1).
package stableid

import "github.com/bytearena/ecs"

// Id is a stable identifier. Zero is reserved to mean "none" and is never
// issued by Next.
type Id uint64

// NoId is the reserved sentinel meaning "no entity".
const NoId Id = 0

// Registry maintains the id <-> entity bijection. Fresh ids are issued
// monotonically increasing from 1. Despawning an entity through
// common.EntityManager.Despawn unregisters it the same frame; removing
// its StableId component directly does not unregister it.
type Registry struct {
	next      Id
	idToEntID map[Id]ecs.EntityID
	entToID   map[ecs.EntityID]Id
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		next:      1,
		idToEntID: make(map[Id]ecs.EntityID),
		entToID:   make(map[ecs.EntityID]Id),
	}
}

// Next allocates and returns the next unused stable id without registering
// it; callers register it against a concrete entity via Register.
func (r *Registry) Next() Id {
	id := r.next
	r.next++
	return id
}

// Register associates a stable id with a live entity id. It is used both
// for freshly spawned entities (Next() then Register) and during load,
// where the save file already specifies the stable id.
func (r *Registry) Register(id Id, entID ecs.EntityID) {
	if id == NoId {
		return
	}
	if old, ok := r.idToEntID[id]; ok {
		delete(r.entToID, old)
	}
	r.idToEntID[id] = entID
	r.entToID[entID] = id
	if id >= r.next {
		r.next = id + 1
	}
}

// Unregister removes id (and whatever entity it points to) from the
// registry. Despawn reaches it through UnregisterEntity; removing a
// StableId component does not call it.
func (r *Registry) Unregister(id Id) {
	entID, ok := r.idToEntID[id]
	if !ok {
		return
	}
	delete(r.idToEntID, id)
	delete(r.entToID, entID)
}

// UnregisterEntity removes whatever stable id (if any) points at entID.
func (r *Registry) UnregisterEntity(entID ecs.EntityID) {
	id, ok := r.entToID[entID]
	if !ok {
		return
	}
	r.Unregister(id)
}

// Lookup resolves a stable id to a live entity id. The boolean is false
// when the id is unknown or has been despawned — callers must treat this
// as a no-op, never an error (spec.md §4.1 "missing id is not an error").
func (r *Registry) Lookup(id Id) (ecs.EntityID, bool) {
	entID, ok := r.idToEntID[id]
	return entID, ok
}

// StableIDOf resolves a live entity id back to its stable id, if any.
func (r *Registry) StableIDOf(entID ecs.EntityID) (Id, bool) {
	id, ok := r.entToID[entID]
	return id, ok
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.idToEntID)
}

// Bijective reports whether the two internal maps are inverses of each
// other at every entry (spec.md testable property 3: "id bijectivity").
func (r *Registry) Bijective() bool {
	if len(r.idToEntID) != len(r.entToID) {
		return false
	}
	for id, entID := range r.idToEntID {
		if back, ok := r.entToID[entID]; !ok || back != id {
			return false
		}
	}
	return true
}

// RemapTable is produced while loading a save: it maps the stable ids as
// they were written to disk to the (possibly different) stable ids they
// are assigned in the freshly loading process, in case of a collision with
// already-registered ids from a different, still-loaded save slot. In the
// normal single-save-slot flow OldToNew is the identity map.
type RemapTable struct {
	OldToNew map[Id]Id
}

// NewRemapTable creates an empty remap table.
func NewRemapTable() *RemapTable {
	return &RemapTable{OldToNew: make(map[Id]Id)}
}

// Remap translates an old on-disk stable id to its current value, or
// returns it unchanged if it was never remapped.
func (t *RemapTable) Remap(old Id) Id {
	if old == NoId {
		return NoId
	}
	if newID, ok := t.OldToNew[old]; ok {
		return newID
	}
	return old
}

// RemapSlice translates a slice of ids in place and returns it.
func (t *RemapTable) RemapSlice(ids []Id) []Id {
	for i, id := range ids {
		ids[i] = t.Remap(id)
	}
	return ids
}
