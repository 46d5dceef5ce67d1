package worldgen

import "frontiersim/randgen"

// featureGrid is a boolean field over a zone's tiles: true means "feature
// cell" (tree, boulder, rock wall — whatever the biome's feature maps to),
// false means base terrain. pinned cells are never flipped by a CA rule,
// so cells locked before the feature pass (rock edge endpoints and the
// stair tile) survive it intact. Roads and rivers are carved after this
// pass and are not pinned here.
type featureGrid struct {
	w, h    int
	cells   []bool
	pinned  []bool
}

func newFeatureGrid(w, h int) *featureGrid {
	return &featureGrid{w: w, h: h, cells: make([]bool, w*h), pinned: make([]bool, w*h)}
}

func (g *featureGrid) idx(x, y int) int { return y*g.w + x }

func (g *featureGrid) get(x, y int) bool {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return true // treat out-of-bounds as feature, matching the teacher's border-is-wall convention
	}
	return g.cells[g.idx(x, y)]
}

func (g *featureGrid) pin(x, y int, value bool) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	i := g.idx(x, y)
	g.cells[i] = value
	g.pinned[i] = true
}

// seedDensity fills every non-pinned cell true with probability density
// (spec.md §4.7 step 4 "initialize a boolean grid with per-cell density").
func (g *featureGrid) seedDensity(rng *randgen.Source, density float64) {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := g.idx(x, y)
			if g.pinned[i] {
				continue
			}
			g.cells[i] = rng.Float64() < density
		}
	}
}

func (g *featureGrid) countNeighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.get(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// caveRule applies one cellular-automata pass (spec.md §4.7 step 4
// "CaveRule(birth, survive)"), ported from the teacher's
// CaveGenerator.cellularAutomataStep: a cell is born a feature if it has
// at least `birth` feature neighbors, stays a feature if it already is one
// and has at least `survive` feature neighbors, and reverts to base
// terrain otherwise. Pinned cells are untouched.
func (g *featureGrid) caveRule(birth, survive int) {
	next := make([]bool, len(g.cells))
	copy(next, g.cells)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := g.idx(x, y)
			if g.pinned[i] {
				continue
			}
			n := g.countNeighbors(x, y)
			if g.cells[i] {
				next[i] = n >= survive
			} else {
				next[i] = n >= birth
			}
		}
	}
	g.cells = next
}

// smoothingRule converts a cell to match the majority of its neighbors
// whenever that majority is at least threshold, smoothing jagged feature
// boundaries (spec.md §4.7 step 4 "SmoothingRule(threshold)").
func (g *featureGrid) smoothingRule(threshold int) {
	next := make([]bool, len(g.cells))
	copy(next, g.cells)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := g.idx(x, y)
			if g.pinned[i] {
				continue
			}
			n := g.countNeighbors(x, y)
			if n >= threshold {
				next[i] = true
			} else if (8 - n) >= threshold {
				next[i] = false
			}
		}
	}
	g.cells = next
}

// erosionRule removes isolated feature cells with at most n feature
// neighbors, preventing single-tile noise speckle (spec.md §4.7 step 4
// "ErosionRule(n)"; ported from CaveGenerator.erode).
func (g *featureGrid) erosionRule(n int) {
	next := make([]bool, len(g.cells))
	copy(next, g.cells)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := g.idx(x, y)
			if g.pinned[i] || !g.cells[i] {
				continue
			}
			if g.countNeighbors(x, y) <= n {
				next[i] = false
			}
		}
	}
	g.cells = next
}
