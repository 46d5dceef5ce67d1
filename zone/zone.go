package zone

import (
	"frontiersim/coords"
	"frontiersim/grid"
	"frontiersim/spatialindex"
)

// Status controls whether AI/particles tick in a loaded zone (spec.md §3.4).
type Status int

const (
	Dormant Status = iota
	Active
)

// Zone is one loaded Wt x Ht tile region at a single z-layer (spec.md §3.4).
type Zone struct {
	Idx      coords.ZoneIndex
	Terrain  *grid.Grid[Terrain]
	Entities *spatialindex.SpatialIndex
	Visible  *grid.Grid[bool]
	Explored *grid.Grid[bool]
	Status   Status

	width, height int
}

// New wraps a generated terrain grid into a freshly loaded, Dormant zone
// with empty visibility/exploration and entity index.
func New(idx coords.ZoneIndex, terrain *grid.Grid[Terrain]) *Zone {
	w, h := terrain.Width(), terrain.Height()
	return &Zone{
		Idx:      idx,
		Terrain:  terrain,
		Entities: spatialindex.New(),
		Visible:  grid.New[bool](w, h),
		Explored: grid.New[bool](w, h),
		Status:   Dormant,
		width:    w,
		height:   h,
	}
}

// MarkVisible sets cell c visible and, per spec.md §4.4's monotone
// exploration invariant, explored.
func (z *Zone) MarkVisible(c coords.LogicalPosition) {
	z.Visible.SetPos(c, true)
	z.Explored.SetPos(c, true)
}

// ClearVisible resets the visible grid to all-false ahead of a fresh FOV
// pass; Explored is left untouched since it only ever grows.
func (z *Zone) ClearVisible() {
	z.Visible.FillValue(false)
}

// Edges recovers this zone's own edge constraints by scanning its terrain
// and entity index for the features that would have been placed there at
// generation time, so it can be handed to not-yet-generated neighbors.
// Only River tiles on the border are recovered, each as an EdgeRiver
// endpoint with default width and river kind. Rock, road and stair
// endpoints are not recovered, and Manager does not keep the Edges a
// generator returns in ZoneData, so those kinds never reach a neighbor.
func (z *Zone) Edges() EdgeConstraints {
	var e EdgeConstraints
	w, h := z.width, z.height
	for x := 0; x < w; x++ {
		if z.Terrain.Get(x, 0) == River {
			e.North = append(e.North, EdgeEndpoint{LocalCoord: x, Kind: EdgeRiver})
		}
		if z.Terrain.Get(x, h-1) == River {
			e.South = append(e.South, EdgeEndpoint{LocalCoord: x, Kind: EdgeRiver})
		}
	}
	for y := 0; y < h; y++ {
		if z.Terrain.Get(0, y) == River {
			e.West = append(e.West, EdgeEndpoint{LocalCoord: y, Kind: EdgeRiver})
		}
		if z.Terrain.Get(w-1, y) == River {
			e.East = append(e.East, EdgeEndpoint{LocalCoord: y, Kind: EdgeRiver})
		}
	}
	return e
}
