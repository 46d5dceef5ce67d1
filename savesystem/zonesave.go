package savesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"frontiersim/ai"
	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/equipment"
	"frontiersim/grid"
	"frontiersim/spatialindex"
	"frontiersim/stableid"
	"frontiersim/zone"

	"github.com/bytearena/ecs"
)

// CurrentSaveVersion is bumped whenever ZoneSaveData or GameSaveData's
// shape changes incompatibly. A save whose Version exceeds this is
// refused rather than guessed at (spec.md §6.3 "unknown version -> refuse
// load"), mirroring the teacher's own version-gated LoadGame.
const CurrentSaveVersion = 1

// SerializedComponent is one (component_name, serialized_bytes) pair
// (spec.md §4.8).
type SerializedComponent struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// SerializedEntity is one entity's save record: its stable id, its world
// position if it has one (item entities held in an inventory don't,
// per the ownership-exclusivity invariant), and its component bag.
type SerializedEntity struct {
	StableID    stableid.Id           `json:"stable_id"`
	HasPosition bool                  `json:"has_position"`
	Position    coords.WorldPosition  `json:"position,omitempty"`
	Components  []SerializedComponent `json:"components"`
}

// ZoneSaveData is the per-zone save record (spec.md §4.8, §6.3): terrain,
// the explored bitmap (visibility is transient and recomputed on load,
// never persisted), and every entity physically hosted in the zone plus
// the inventory items they own.
type ZoneSaveData struct {
	Version  int                `json:"version"`
	Idx      coords.ZoneIndex   `json:"idx"`
	Width    int                `json:"width"`
	Height   int                `json:"height"`
	Terrain  []zone.Terrain     `json:"terrain"`
	Explored []bool             `json:"explored"`
	Entities []SerializedEntity `json:"entities"`
}

// Store implements zone.Persistence and the top-level GameSaveData
// load/save, writing one JSON file per zone under <dir>/zones/ and one
// meta.json under <dir> (spec.md §6.3's saves/<slot>/ layout), using the
// teacher's atomic-write-then-rename pattern from savesystem.go.
type Store struct {
	dir  string
	proj coords.WorldProjection
}

// NewStore builds a Store rooted at dir (a single save slot's directory,
// e.g. "saves/1"). proj is needed to rebuild a loaded zone's spatial
// index from the world positions recorded on disk.
func NewStore(dir string, proj coords.WorldProjection) *Store {
	return &Store{dir: dir, proj: proj}
}

func (s *Store) zonesDir() string { return filepath.Join(s.dir, "zones") }

func (s *Store) zoneFilePath(idx coords.ZoneIndex) string {
	return filepath.Join(s.zonesDir(), fmt.Sprintf("%d.json", int(idx)))
}

func (s *Store) metaFilePath() string { return filepath.Join(s.dir, "meta.json") }

// HasZoneSave reports whether a save record exists for idx.
func (s *Store) HasZoneSave(idx coords.ZoneIndex) bool {
	_, err := os.Stat(s.zoneFilePath(idx))
	return err == nil
}

// SaveZone serializes z's terrain, explored bitmap, and every entity
// hosted in it (plus inventory contents) to disk (spec.md §4.8
// "serialize on unload").
func (s *Store) SaveZone(em *common.EntityManager, z *zone.Zone) error {
	w, h := z.Terrain.Width(), z.Terrain.Height()
	data := ZoneSaveData{
		Version:  CurrentSaveVersion,
		Idx:      z.Idx,
		Width:    w,
		Height:   h,
		Terrain:  make([]zone.Terrain, 0, w*h),
		Explored: make([]bool, 0, w*h),
	}
	z.Terrain.IterXY(func(x, y int, v zone.Terrain) { data.Terrain = append(data.Terrain, v) })
	z.Explored.IterXY(func(x, y int, v bool) { data.Explored = append(data.Explored, v) })

	for _, rawID := range z.Entities.AllIDs() {
		id := stableid.Id(rawID)
		e := common.FindByStableID(em, id)
		if e == nil {
			continue
		}
		se, err := s.serializeEntity(e, id, true)
		if err != nil {
			return fmt.Errorf("zone %d: %w", z.Idx, err)
		}
		data.Entities = append(data.Entities, se)

		inv := common.GetComponentType[*equipment.Inventory](e, equipment.InventoryComponent)
		if inv == nil {
			continue
		}
		for _, itemID := range inv.Items {
			itemEnt := common.FindByStableID(em, itemID)
			if itemEnt == nil {
				continue
			}
			itemSe, err := s.serializeEntity(itemEnt, itemID, false)
			if err != nil {
				return fmt.Errorf("zone %d item %d: %w", z.Idx, itemID, err)
			}
			data.Entities = append(data.Entities, itemSe)
		}
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling zone %d save: %w", z.Idx, err)
	}
	raw, err := wrapEnvelope(payload)
	if err != nil {
		return fmt.Errorf("wrapping zone %d save: %w", z.Idx, err)
	}
	if err := os.MkdirAll(s.zonesDir(), 0o755); err != nil {
		return fmt.Errorf("creating zones directory: %w", err)
	}
	return atomicWriteFile(s.zoneFilePath(z.Idx), raw)
}

func (s *Store) serializeEntity(e *ecs.Entity, id stableid.Id, hasPosition bool) (SerializedEntity, error) {
	se := SerializedEntity{StableID: id, HasPosition: hasPosition}
	if hasPosition {
		if pos := common.GetPosition(e); pos != nil {
			se.Position = pos.WorldPosition
		}
	}
	comps, err := encodeComponents(e)
	if err != nil {
		return SerializedEntity{}, err
	}
	se.Components = comps
	return se, nil
}

// LoadZone reconstructs a Zone from disk: deserializes every entity,
// re-registers stable ids, and rebuilds the spatial index from recorded
// positions (spec.md §4.8 load-ordering steps 1-4).
func (s *Store) LoadZone(em *common.EntityManager, idx coords.ZoneIndex) (*zone.Zone, error) {
	raw, err := os.ReadFile(s.zoneFilePath(idx))
	if err != nil {
		return nil, fmt.Errorf("reading zone %d save: %w", idx, err)
	}
	payload, err := unwrapEnvelope(raw)
	if err != nil {
		return nil, fmt.Errorf("zone %d save: %w", idx, err)
	}
	var data ZoneSaveData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("parsing zone %d save: %w", idx, err)
	}
	if data.Version > CurrentSaveVersion {
		return nil, fmt.Errorf("zone %d save version %d is newer than supported version %d", idx, data.Version, CurrentSaveVersion)
	}

	terrain := grid.New[zone.Terrain](data.Width, data.Height)
	for i, v := range data.Terrain {
		if i >= data.Width*data.Height {
			break
		}
		terrain.Set(i%data.Width, i/data.Width, v)
	}
	z := zone.New(idx, terrain)
	for i, v := range data.Explored {
		if i >= data.Width*data.Height {
			break
		}
		z.Explored.Set(i%data.Width, i/data.Width, v)
	}

	remap := stableid.NewRemapTable()
	for _, se := range data.Entities {
		if _, ok := em.Ids.Lookup(se.StableID); ok {
			// Collision with an id already registered by a different,
			// still-loaded save slot: issue a fresh id and remember the
			// translation so references to it elsewhere get fixed up too.
			remap.OldToNew[se.StableID] = em.NextStableID()
		}
	}

	for _, se := range data.Entities {
		e := em.World.NewEntity()
		if err := decodeComponents(e, se.Components); err != nil {
			return nil, fmt.Errorf("zone %d entity %d: %w", idx, se.StableID, err)
		}
		newID := remap.Remap(se.StableID)
		em.RestoreStableID(e, newID)

		if se.HasPosition {
			e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: se.Position})
			local := s.proj.WorldToZoneLocal(se.Position.X, se.Position.Y)
			z.Entities.InsertPos(local, spatialindex.Id(newID))
		}

		remapOwnedReferences(e, remap)
	}

	return z, nil
}

// remapOwnedReferences rewrites the stable-id references a just-decoded
// entity's components may hold to other entities (inventory ownership,
// equip slots, AI targets) through remap, so a collision-driven id
// reassignment doesn't leave those pointing at whatever unrelated entity
// ends up holding the old id. A no-op when remap has no entries, which is
// the common case of loading a single save slot into a fresh process.
func remapOwnedReferences(e *ecs.Entity, remap *stableid.RemapTable) {
	if len(remap.OldToNew) == 0 {
		return
	}
	if inv := common.GetComponentType[*equipment.Inventory](e, equipment.InventoryComponent); inv != nil {
		remap.RemapSlice(inv.Items)
	}
	if ii := common.GetComponentType[*equipment.InInventory](e, equipment.InInventoryComponent); ii != nil {
		ii.Owner = remap.Remap(ii.Owner)
	}
	if eq := common.GetComponentType[*equipment.Equipped](e, equipment.EquippedComponent); eq != nil {
		eq.Owner = remap.Remap(eq.Owner)
	}
	if slots := common.GetComponentType[*equipment.EquipmentSlots](e, equipment.EquipmentSlotsComponent); slots != nil {
		for k, v := range slots.Slots {
			slots.Slots[k] = remap.Remap(v)
		}
	}
	if ctl := common.GetComponentType[*ai.Controller](e, ai.ControllerComponent); ctl != nil {
		ctl.Target = remap.Remap(ctl.Target)
	}
}
