package zone

import (
	"frontiersim/common"
	"frontiersim/coords"
)

// Persistence is the zone half of save/load (spec.md §4.8): it knows how
// to serialize a loaded Zone's logical state (terrain, explored grid,
// entities, their inventory contents) and how to rebuild one from disk.
// savesystem.Store implements this; zone depends only on the interface so
// the two packages don't import each other.
type Persistence interface {
	// HasZoneSave reports whether a save record exists for idx, so the
	// manager knows whether to deserialize (a) or generate (b) on load
	// (spec.md §4.2 "Load").
	HasZoneSave(idx coords.ZoneIndex) bool

	// LoadZone deserializes idx's save record into live entities in em,
	// returning the reconstructed Zone. Callers must rebuild the spatial
	// index from entity positions per spec.md §4.8 load ordering step 4;
	// LoadZone does this before returning.
	LoadZone(em *common.EntityManager, idx coords.ZoneIndex) (*Zone, error)

	// SaveZone serializes z and every entity physically hosted in it (plus
	// inventory items owned by entities in the zone) to disk.
	SaveZone(em *common.EntityManager, z *Zone) error
}
