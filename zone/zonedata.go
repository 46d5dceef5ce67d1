package zone

import (
	"frontiersim/coords"
	"frontiersim/grid"
)

// EdgeKind names what kind of inter-zone continuity feature occupies a
// point along a zone edge (spec.md §4.7 step 2).
type EdgeKind int

const (
	EdgeNone EdgeKind = iota
	EdgeRoad
	EdgeRiver
	EdgeRock
	EdgeStair
)

// RiverKind distinguishes the river widths/behaviors the original
// prototype's edge constraints carry (SUPPLEMENTED FEATURES #6).
type RiverKind int

const (
	RiverStream RiverKind = iota
	RiverWide
)

// Side names one of the four horizontal edges of a zone.
type Side int

const (
	SideNorth Side = iota
	SideSouth
	SideEast
	SideWest
)

// EdgeEndpoint is one constrained point along a zone edge: a road, river,
// rock wall, or stair continuation that the neighboring zone on the other
// side of this edge must match symmetrically.
type EdgeEndpoint struct {
	LocalCoord int // position along the edge (x for N/S edges, y for E/W edges)
	Kind       EdgeKind
	Width      int
	River      RiverKind
}

// EdgeConstraints is the full set of continuity constraints a zone either
// receives from its already-generated neighbors, or produces for zones not
// yet generated (spec.md §4.7 step 2).
type EdgeConstraints struct {
	North, South, East, West []EdgeEndpoint
	StairUp, StairDown       bool
}

// SpawnDescriptor names a prefab to instantiate at a zone-local position;
// it refers to prefab kinds and positions, never to live engine entities
// (spec.md §4.7 "Output").
type SpawnDescriptor struct {
	Prefab string
	Pos    coords.LogicalPosition
}

// ZoneData is the deterministic output of a zone generation run: a
// terrain grid plus the list of entities to spawn into it, and this
// zone's own edges so a not-yet-generated neighbor can continue them
// (spec.md §4.7 "Output").
type ZoneData struct {
	Terrain *grid.Grid[Terrain]
	Spawns  []SpawnDescriptor
	Edges   EdgeConstraints
}

// Generator produces a ZoneData for a zone index from a seed and the edge
// constraints inherited from already-generated neighbors (spec.md §4.7).
// worldgen.Generator is the concrete implementation; Zone only depends on
// this interface so the two packages don't import each other.
type Generator interface {
	Generate(idx coords.ZoneIndex, seed uint32, neighbors EdgeConstraints) ZoneData
}
