package zone

import (
	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/equipment"
	"frontiersim/spatialindex"
	"frontiersim/stableid"

	"go.uber.org/zap"
)

// Manager is the Zone Manager (spec.md §4.2): it loads/unloads/activates
// zones based on player position, and owns the per-zone terrain,
// visibility, and entity index state while a zone is resident.
type Manager struct {
	proj    coords.WorldProjection
	gen     Generator
	persist Persistence
	seed    uint32
	em      *common.EntityManager
	spawn   SpawnFunc
	log     *zap.SugaredLogger

	loaded map[coords.ZoneIndex]*Zone
	active []coords.ZoneIndex
}

// NewManager builds a Manager with no zones loaded yet. persist may be nil
// (every zone is generated fresh, never loaded from disk); spawn defaults
// to DefaultSpawn if nil.
func NewManager(proj coords.WorldProjection, gen Generator, persist Persistence, seed uint32, em *common.EntityManager, spawn SpawnFunc, log *zap.SugaredLogger) *Manager {
	if spawn == nil {
		spawn = DefaultSpawn
	}
	return &Manager{
		proj:    proj,
		gen:     gen,
		persist: persist,
		seed:    seed,
		em:      em,
		spawn:   spawn,
		log:     log,
		loaded:  make(map[coords.ZoneIndex]*Zone),
	}
}

// Projection exposes the world projection zones are laid out under, so
// callers outside this package (e.g. the action resolver) can convert
// between world and zone-local coordinates without duplicating it.
func (m *Manager) Projection() coords.WorldProjection {
	return m.proj
}

// Zone returns the loaded zone at idx, if any.
func (m *Manager) Zone(idx coords.ZoneIndex) (*Zone, bool) {
	z, ok := m.loaded[idx]
	return z, ok
}

// ZoneAt returns the loaded zone containing a world position, if any.
func (m *Manager) ZoneAt(pos coords.WorldPosition) (*Zone, bool) {
	idx := m.proj.WorldToZoneIdx(pos.X, pos.Y, pos.Z)
	return m.Zone(idx)
}

// Active returns the zone indices currently marked Active (normally just
// the player's zone).
func (m *Manager) Active() []coords.ZoneIndex {
	return m.active
}

// SetPlayerZone records that the player is now in idx (spec.md §4.2 step
// 1, "if the player moved to a new zone, set active = [new_idx]"). It does
// not itself load/unload anything; call Tick to process one step of work.
func (m *Manager) SetPlayerZone(idx coords.ZoneIndex) {
	m.active = []coords.ZoneIndex{idx}
}

// needed computes active ∪ {8-neighbors in plane} ∪ {z±1 of active}
// (spec.md §4.2 step 2).
func (m *Manager) needed() map[coords.ZoneIndex]bool {
	need := make(map[coords.ZoneIndex]bool, len(m.active)*11)
	for _, idx := range m.active {
		need[idx] = true
		zc := m.proj.ZoneXYZ(idx)
		for _, n := range m.proj.PlaneNeighbors8(zc) {
			need[m.proj.ZoneIdx(n.X, n.Y, n.Z)] = true
		}
		for _, n := range m.proj.VerticalNeighbors(zc) {
			need[m.proj.ZoneIdx(n.X, n.Y, n.Z)] = true
		}
	}
	return need
}

// Tick runs one step of the streaming algorithm: at most one unload and
// one load are processed, then every loaded zone's status is set
// (spec.md §4.2 steps 3-5, "only one load and one unload are processed
// per frame to bound work").
func (m *Manager) Tick() {
	need := m.needed()

	if idx, ok := m.pickLowest(m.loaded, func(idx coords.ZoneIndex) bool { return !need[idx] }); ok {
		m.unload(idx)
	}

	if idx, ok := m.pickLowestFromSet(need); ok {
		m.load(idx)
	}

	for idx, z := range m.loaded {
		if m.isActive(idx) {
			z.Status = Active
		} else {
			z.Status = Dormant
		}
	}
}

func (m *Manager) isActive(idx coords.ZoneIndex) bool {
	for _, a := range m.active {
		if a == idx {
			return true
		}
	}
	return false
}

// pickLowest deterministically selects the smallest zone index currently
// loaded that satisfies pred, so streaming order doesn't depend on Go's
// randomized map iteration.
func (m *Manager) pickLowest(loaded map[coords.ZoneIndex]*Zone, pred func(coords.ZoneIndex) bool) (coords.ZoneIndex, bool) {
	var best coords.ZoneIndex
	found := false
	for idx := range loaded {
		if !pred(idx) {
			continue
		}
		if !found || idx < best {
			best, found = idx, true
		}
	}
	return best, found
}

func (m *Manager) pickLowestFromSet(need map[coords.ZoneIndex]bool) (coords.ZoneIndex, bool) {
	var best coords.ZoneIndex
	found := false
	for idx := range need {
		if _, ok := m.loaded[idx]; ok {
			continue
		}
		if !found || idx < best {
			best, found = idx, true
		}
	}
	return best, found
}

// load brings one zone into residency, from disk if a save record exists,
// else by generation (spec.md §4.2 "Load").
func (m *Manager) load(idx coords.ZoneIndex) {
	if m.persist != nil && m.persist.HasZoneSave(idx) {
		z, err := m.persist.LoadZone(m.em, idx)
		if err == nil {
			m.loaded[idx] = z
			return
		}
		if m.log != nil {
			m.log.Warnw("zone load failed, regenerating from seed", "zone", idx, "error", err)
		}
	}
	m.loaded[idx] = m.generate(idx)
}

func (m *Manager) generate(idx coords.ZoneIndex) *Zone {
	data := m.gen.Generate(idx, m.seed, m.neighborEdges(idx))
	z := New(idx, data.Terrain)
	for _, desc := range data.Spawns {
		zc := m.proj.ZoneXYZ(idx)
		originX, originY := m.proj.ZoneOrigin(zc)
		worldPos := coords.WorldPosition{X: originX + desc.Pos.X, Y: originY + desc.Pos.Y, Z: zc.Z}
		e := m.spawn(m.em, desc.Prefab, worldPos)
		if e == nil {
			continue
		}
		id := common.StableIDOf(e)
		if id != stableid.NoId {
			z.Entities.InsertPos(desc.Pos, spatialindex.Id(id))
		}
	}
	return z
}

// neighborEdges gathers edge constraints from whichever neighbors happen
// to already be loaded, so a newly generated zone's shared border agrees
// with them. Neighbors not currently resident contribute EdgeNone; they
// will be generated independently and must agree only with zones loaded
// at the time each is generated — an accepted simplification of full
// global consistency, since the zone manager only ever streams a small
// neighborhood at once.
func (m *Manager) neighborEdges(idx coords.ZoneIndex) EdgeConstraints {
	var out EdgeConstraints
	zc := m.proj.ZoneXYZ(idx)

	north := coords.ZoneCoord{X: zc.X, Y: zc.Y - 1, Z: zc.Z}
	south := coords.ZoneCoord{X: zc.X, Y: zc.Y + 1, Z: zc.Z}
	west := coords.ZoneCoord{X: zc.X - 1, Y: zc.Y, Z: zc.Z}
	east := coords.ZoneCoord{X: zc.X + 1, Y: zc.Y, Z: zc.Z}

	if m.proj.InMapBounds(north) {
		if n, ok := m.loaded[m.proj.ZoneIdx(north.X, north.Y, north.Z)]; ok {
			out.North = n.Edges().South
		}
	}
	if m.proj.InMapBounds(south) {
		if n, ok := m.loaded[m.proj.ZoneIdx(south.X, south.Y, south.Z)]; ok {
			out.South = n.Edges().North
		}
	}
	if m.proj.InMapBounds(west) {
		if n, ok := m.loaded[m.proj.ZoneIdx(west.X, west.Y, west.Z)]; ok {
			out.West = n.Edges().East
		}
	}
	if m.proj.InMapBounds(east) {
		if n, ok := m.loaded[m.proj.ZoneIdx(east.X, east.Y, east.Z)]; ok {
			out.East = n.Edges().West
		}
	}
	return out
}

// unload serializes a zone then despawns everything physically hosted in
// it, plus inventory items owned by those entities (spec.md §4.2
// "Unload").
func (m *Manager) unload(idx coords.ZoneIndex) {
	z, ok := m.loaded[idx]
	if !ok {
		return
	}
	if m.persist != nil {
		if err := m.persist.SaveZone(m.em, z); err != nil && m.log != nil {
			m.log.Warnw("zone save failed, not persisted", "zone", idx, "error", err)
		}
	}
	for _, rawID := range z.Entities.AllIDs() {
		id := stableid.Id(rawID)
		entity := common.FindByStableID(m.em, id)
		if entity == nil {
			continue
		}
		if inv := common.GetComponentType[*equipment.Inventory](entity, equipment.InventoryComponent); inv != nil {
			for _, itemID := range inv.Items {
				if itemEnt := common.FindByStableID(m.em, itemID); itemEnt != nil {
					m.em.Despawn(itemEnt)
				}
			}
		}
		m.em.Despawn(entity)
	}
	delete(m.loaded, idx)
}
