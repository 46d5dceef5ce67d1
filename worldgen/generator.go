// Package worldgen implements the Zone Generator (spec.md §4.7): a pure,
// deterministic function from (zone index, seed, neighbor edge
// constraints) to a filled terrain grid and a list of spawn descriptors.
// It is grounded on the teacher's worldmap generators — noise-driven
// biome selection (gen_perlin_biome.go), cellular-automata feature fields
// (gen_cave.go), and A* path carving (astar.go) — generalized from the
// teacher's single flat battle-map generation into the spec's layered
// per-zone pipeline (edges -> biome -> CA features -> roads -> rivers ->
// loot), and from the teacher's spawning.ProbabilityTable into
// loottable.go's weighted biome tables.
package worldgen

import (
	"frontiersim/coords"
	"frontiersim/grid"
	"frontiersim/randgen"
	"frontiersim/zone"
)

// Generator implements zone.Generator.
type Generator struct {
	proj      coords.WorldProjection
	surfaceZ  int
	lootDensity float64
}

// NewGenerator builds a Generator over proj's sizing. surfaceZ is the
// z-index boundary between open-air zones above and cavern zones below
// (spec.md §4.7 step 3); lootDensity is the per-walkable-tile probability
// of rolling a loot/enemy spawn (spec.md §4.7 step 7).
func NewGenerator(proj coords.WorldProjection, surfaceZ int, lootDensity float64) *Generator {
	return &Generator{proj: proj, surfaceZ: surfaceZ, lootDensity: lootDensity}
}

// Generate implements zone.Generator (spec.md §4.7).
func (g *Generator) Generate(idx coords.ZoneIndex, seed uint32, neighbors zone.EdgeConstraints) zone.ZoneData {
	zc := g.proj.ZoneXYZ(idx)
	w, h := g.proj.ZoneWidth, g.proj.ZoneHeight

	// Step 1: seed RNG from (seed, zone_idx).
	rng := randgen.NewDerivedSource(seed, int(idx))

	biome := selectBiome(zc.X, zc.Y, zc.Z, g.surfaceZ, seed)

	terrain := grid.New[zone.Terrain](w, h)
	terrain.FillValue(biome.baseTerrain())

	// Step 2: edge constraints, inherited or freshly rolled.
	edges := deriveEdges(rng, neighbors, w, h)
	locked := newFeatureGrid(w, h)
	applyRockAndStairEdges(terrain, locked, edges, w, h)

	// Step 4: CA feature field, excluding already-locked cells.
	features := newFeatureGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if locked.get(x, y) {
				features.pin(x, y, false)
			}
		}
	}
	features.seedDensity(rng, biome.featureDensity())
	features.caveRule(5, 4)
	features.smoothingRule(5)
	features.erosionRule(1)

	var spawns []zone.SpawnDescriptor
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if locked.get(x, y) || !features.get(x, y) {
				continue
			}
			terrain.Set(x, y, biome.featureTerrain())
			if prefab := biome.featurePrefab(); prefab != "" {
				spawns = append(spawns, zone.SpawnDescriptor{Prefab: prefab, Pos: coords.LogicalPosition{X: x, Y: y}})
			}
		}
	}

	// Step 5: roads.
	g.carveRoads(terrain, features, locked, edges, seed, w, h)
	// Step 6: rivers, carved after roads so they overwrite them.
	g.carveRivers(terrain, features, locked, edges, seed, w, h)

	// Stairs are placed last so neither feature fill nor path carving can
	// overwrite the tile a vertical neighbor depends on.
	if edges.StairDown {
		cx, cy := w/2, h/2
		terrain.Set(cx, cy, zone.StairDown)
	}

	// Step 7: loot and enemies.
	table := biomeLootTable(biome)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if terrain.Get(x, y).BlocksWalk() {
				continue
			}
			if rng.Float64() >= g.lootDensity {
				continue
			}
			if prefab, ok := table.roll(rng); ok {
				spawns = append(spawns, zone.SpawnDescriptor{Prefab: prefab, Pos: coords.LogicalPosition{X: x, Y: y}})
			}
		}
	}

	return zone.ZoneData{Terrain: terrain, Spawns: spawns, Edges: edges}
}

// roadCost is the noise-perturbed A* cost function for road carving
// (spec.md §4.7 step 5: "cost = 1 + noise*{1.0|10.0}; locked cells cost
// 100" — the higher multiplier applies over feature cells, so roads
// naturally bend around trees/boulders rather than plowing through them).
func roadCost(features, locked *featureGrid, seed uint32) costFunc {
	return func(x, y int) float64 {
		if locked.get(x, y) {
			return 100
		}
		multiplier := 1.0
		if features.get(x, y) {
			multiplier = 10.0
		}
		return 1 + hashNoise(x, y, seed)*multiplier
	}
}

// riverCost is the meandering A* cost function for river carving
// (spec.md §4.7 step 6), seeded per endpoint pair so each river takes a
// distinct wandering path rather than always following the same noise
// field as the roads.
func riverCost(locked *featureGrid, pairSeed uint32) costFunc {
	return func(x, y int) float64 {
		if locked.get(x, y) {
			return 100
		}
		return 1 + hashNoise(x, y, pairSeed)*6.0
	}
}

func (g *Generator) carveRoads(terrain *grid.Grid[zone.Terrain], features, locked *featureGrid, edges zone.EdgeConstraints, seed uint32, w, h int) {
	pts := collectEndpoints(edges, zone.EdgeRoad, w, h)
	widths := endpointWidths(edges, zone.EdgeRoad)
	width := 1
	for _, wd := range widths {
		if wd > width {
			width = wd
		}
	}
	cost := roadCost(features, locked, seed^0x50AD)
	carvePairs(terrain, locked, pts, w, h, width, zone.Dirt, cost)
}

func (g *Generator) carveRivers(terrain *grid.Grid[zone.Terrain], features, locked *featureGrid, edges zone.EdgeConstraints, seed uint32, w, h int) {
	pts := collectEndpoints(edges, zone.EdgeRiver, w, h)
	width := 1
	for _, ep := range append(append(append(append([]zone.EdgeEndpoint{}, edges.North...), edges.South...), edges.East...), edges.West...) {
		if ep.Kind == zone.EdgeRiver && ep.River == zone.RiverWide && width < 3 {
			width = 3
		}
	}
	for i := 0; i+1 < len(pts); i += 2 {
		pairSeed := seed ^ uint32(pts[i].X*73856093+pts[i].Y*19349663+pts[i+1].X*83492791+pts[i+1].Y*31)
		path := astarPath(w, h, pts[i], pts[i+1], 1, riverCost(locked, pairSeed))
		widenPath(terrain, locked, path, width, zone.River)
	}
	if len(pts)%2 == 1 {
		last := pts[len(pts)-1]
		center := coords.LogicalPosition{X: w / 2, Y: h / 2}
		pairSeed := seed ^ uint32(last.X*17+last.Y*31)
		path := astarPath(w, h, last, center, 1, riverCost(locked, pairSeed))
		widenPath(terrain, locked, path, width, zone.River)
	}
}

func endpointWidths(edges zone.EdgeConstraints, kind zone.EdgeKind) []int {
	var out []int
	for _, eps := range [][]zone.EdgeEndpoint{edges.North, edges.South, edges.East, edges.West} {
		for _, ep := range eps {
			if ep.Kind == kind {
				out = append(out, ep.Width)
			}
		}
	}
	return out
}

func carvePairs(terrain *grid.Grid[zone.Terrain], locked *featureGrid, pts []coords.LogicalPosition, w, h, width int, pathTerrain zone.Terrain, cost costFunc) {
	for i := 0; i+1 < len(pts); i += 2 {
		path := astarPath(w, h, pts[i], pts[i+1], 1, cost)
		widenPath(terrain, locked, path, width, pathTerrain)
	}
	if len(pts)%2 == 1 {
		last := pts[len(pts)-1]
		center := coords.LogicalPosition{X: w / 2, Y: h / 2}
		path := astarPath(w, h, last, center, 1, cost)
		widenPath(terrain, locked, path, width, pathTerrain)
	}
}

func widenPath(terrain *grid.Grid[zone.Terrain], locked *featureGrid, path []coords.LogicalPosition, width int, t zone.Terrain) {
	radius := width / 2
	for _, p := range path {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				x, y := p.X+dx, p.Y+dy
				if !terrain.InBounds(x, y) || locked.get(x, y) {
					continue
				}
				terrain.Set(x, y, t)
			}
		}
	}
}
