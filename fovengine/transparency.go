// Package fovengine computes per-zone visibility (spec.md §4.4) by
// delegating the actual recursive shadowcast to github.com/norendren/go-fov,
// the same library the teacher's map code used, wrapped behind an adapter
// over zone.Zone instead of the teacher's GameMap.
package fovengine

import (
	"frontiersim/common"
	"frontiersim/ecshelper"
	"frontiersim/stableid"
	"frontiersim/zone"
)

// transparencyMap adapts a zone.Zone to go-fov's required shape: InBounds
// and IsOpaque, both taking zone-local tile coordinates. A cell is opaque
// if its bare terrain blocks sight, or if any entity standing on it
// carries a Collider with BlocksSight set (spec.md §4.4 "a cell blocks
// sight if its terrain or an occupying entity's Collider says so").
type transparencyMap struct {
	em *common.EntityManager
	z  *zone.Zone
}

func newTransparencyMap(em *common.EntityManager, z *zone.Zone) transparencyMap {
	return transparencyMap{em: em, z: z}
}

func (t transparencyMap) InBounds(x, y int) bool {
	return t.z.Terrain.InBounds(x, y)
}

func (t transparencyMap) IsOpaque(x, y int) bool {
	if t.z.Terrain.Get(x, y).BlocksSight() {
		return true
	}
	for _, rawID := range t.z.Entities.At(x, y) {
		occupant := common.FindByStableID(t.em, stableid.Id(rawID))
		if occupant == nil {
			continue
		}
		if collider := common.GetComponentType[*ecshelper.Collider](occupant, ecshelper.ColliderComponent); collider != nil {
			if collider.Has(ecshelper.BlocksSight) {
				return true
			}
		}
	}
	return false
}
