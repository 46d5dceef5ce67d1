package worldgen

import (
	"sort"

	"frontiersim/coords"
	"frontiersim/grid"
	"frontiersim/randgen"
	"frontiersim/zone"
)

// deriveEdges produces this zone's own edge constraints (spec.md §4.7 step
// 2): any side the already-generated neighbor constrained is honored
// verbatim (so the shared cells agree), and any unconstrained side gets
// freshly rolled endpoints — which become the constraint the as-yet-
// ungenerated neighbor on that side must honor when its turn comes.
func deriveEdges(rng *randgen.Source, neighbors zone.EdgeConstraints, w, h int) zone.EdgeConstraints {
	return zone.EdgeConstraints{
		North:     inheritOrRoll(rng, neighbors.North, w),
		South:     inheritOrRoll(rng, neighbors.South, w),
		East:      inheritOrRoll(rng, neighbors.East, h),
		West:      inheritOrRoll(rng, neighbors.West, h),
		StairUp:   neighbors.StairUp,
		StairDown: neighbors.StairDown || rng.Bool(0.05),
	}
}

func inheritOrRoll(rng *randgen.Source, existing []zone.EdgeEndpoint, length int) []zone.EdgeEndpoint {
	if len(existing) > 0 {
		return existing
	}
	var out []zone.EdgeEndpoint
	if rng.Bool(0.3) {
		out = append(out, zone.EdgeEndpoint{LocalCoord: rng.Intn(length), Kind: zone.EdgeRoad, Width: 1 + rng.Intn(2)})
	}
	if rng.Bool(0.2) {
		river := zone.RiverStream
		if rng.Bool(0.3) {
			river = zone.RiverWide
		}
		out = append(out, zone.EdgeEndpoint{LocalCoord: rng.Intn(length), Kind: zone.EdgeRiver, River: river})
	}
	if rng.Bool(0.05) {
		out = append(out, zone.EdgeEndpoint{LocalCoord: rng.Intn(length), Kind: zone.EdgeRock})
	}
	return out
}

// edgeLocalXY converts an edge-relative coordinate to a zone-local (x, y).
func edgeLocalXY(side zone.Side, localCoord, w, h int) coords.LogicalPosition {
	switch side {
	case zone.SideNorth:
		return coords.LogicalPosition{X: localCoord, Y: 0}
	case zone.SideSouth:
		return coords.LogicalPosition{X: localCoord, Y: h - 1}
	case zone.SideEast:
		return coords.LogicalPosition{X: w - 1, Y: localCoord}
	default: // SideWest
		return coords.LogicalPosition{X: 0, Y: localCoord}
	}
}

// applyRockAndStairEdges pins Rock terrain at EdgeRock endpoints and
// places a StairDown tile near center when this zone's edges call for
// one, marking every such cell in locked so later passes don't overwrite
// it (spec.md §4.7 step 2's Rock/StairDown constraint kinds).
func applyRockAndStairEdges(terrain *grid.Grid[zone.Terrain], locked *featureGrid, edges zone.EdgeConstraints, w, h int) {
	sides := []struct {
		side zone.Side
		eps  []zone.EdgeEndpoint
	}{
		{zone.SideNorth, edges.North}, {zone.SideSouth, edges.South},
		{zone.SideEast, edges.East}, {zone.SideWest, edges.West},
	}
	for _, s := range sides {
		for _, ep := range s.eps {
			if ep.Kind != zone.EdgeRock {
				continue
			}
			p := edgeLocalXY(s.side, ep.LocalCoord, w, h)
			terrain.SetPos(p, zone.Rock)
			locked.pin(p.X, p.Y, true)
		}
	}

	if edges.StairDown {
		cx, cy := w/2, h/2
		terrain.Set(cx, cy, zone.StairDown)
		locked.pin(cx, cy, true)
	}
}

// collectEndpoints gathers every edge endpoint of kind k as a zone-local
// position, in a deterministic (side, coord)-sorted order so pairing is
// reproducible across identical inputs.
func collectEndpoints(edges zone.EdgeConstraints, kind zone.EdgeKind, w, h int) []coords.LogicalPosition {
	type found struct {
		side  zone.Side
		coord int
		pos   coords.LogicalPosition
		width int
		river zone.RiverKind
	}
	var all []found
	add := func(side zone.Side, eps []zone.EdgeEndpoint) {
		for _, ep := range eps {
			if ep.Kind != kind {
				continue
			}
			all = append(all, found{side: side, coord: ep.LocalCoord, pos: edgeLocalXY(side, ep.LocalCoord, w, h), width: ep.Width, river: ep.River})
		}
	}
	add(zone.SideNorth, edges.North)
	add(zone.SideSouth, edges.South)
	add(zone.SideEast, edges.East)
	add(zone.SideWest, edges.West)

	sort.Slice(all, func(i, j int) bool {
		if all[i].side != all[j].side {
			return all[i].side < all[j].side
		}
		return all[i].coord < all[j].coord
	})

	out := make([]coords.LogicalPosition, len(all))
	for i, f := range all {
		out[i] = f.pos
	}
	return out
}
