package fovengine

import (
	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/zone"
)

// VisionCache remembers the last viewer position FOV was computed from
// for each zone, so RecomputeChanged only pays for a shadowcast when a
// viewer actually moved (or a zone was freshly loaded), rather than every
// frame (spec.md §4.4 "recomputed... when the viewer's position or the
// terrain around it changes").
type VisionCache struct {
	last    map[coords.ZoneIndex]coords.LogicalPosition
	changed map[coords.ZoneIndex]bool
}

// NewVisionCache builds an empty cache.
func NewVisionCache() *VisionCache {
	return &VisionCache{
		last:    make(map[coords.ZoneIndex]coords.LogicalPosition),
		changed: make(map[coords.ZoneIndex]bool),
	}
}

// Changed reports whether idx's visibility changed on the most recent
// RecomputeChanged call.
func (c *VisionCache) Changed(idx coords.ZoneIndex) bool {
	return c.changed[idx]
}

// RecomputeChanged runs FOV for every (zone, viewer) pair whose viewer has
// moved since the last call (or is new), clearing the changed set first.
// Viewers not present this call (e.g. the zone unloaded) are forgotten.
func (c *VisionCache) RecomputeChanged(em *common.EntityManager, viewers map[coords.ZoneIndex]struct {
	Zone   *zone.Zone
	Origin coords.LogicalPosition
	Radius int
}) {
	for idx := range c.changed {
		delete(c.changed, idx)
	}

	seen := make(map[coords.ZoneIndex]bool, len(viewers))
	for idx, v := range viewers {
		seen[idx] = true
		if prev, ok := c.last[idx]; ok && prev == v.Origin {
			continue
		}
		Recompute(em, v.Zone, v.Origin, v.Radius)
		c.last[idx] = v.Origin
		c.changed[idx] = true
	}
	for idx := range c.last {
		if !seen[idx] {
			delete(c.last, idx)
		}
	}
}
