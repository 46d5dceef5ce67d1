package fovengine

import (
	"testing"

	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/grid"
	"frontiersim/spatialindex"
	"frontiersim/zone"
)

func newFovTestEM() *common.EntityManager {
	em := common.NewEntityManager()
	common.InitializeCommonComponents(em.World)
	ecshelper.InitializePhysicalComponents(em.World)
	return em
}

func openZone(w, h int) *zone.Zone {
	return zone.New(coords.ZoneIndex(0), grid.New[zone.Terrain](w, h))
}

func placeSightBlocker(em *common.EntityManager, z *zone.Zone, x, y int) {
	e := em.World.NewEntity()
	e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: coords.WorldPosition{X: x, Y: y}})
	e.AddComponent(ecshelper.ColliderComponent, &ecshelper.Collider{Flags: ecshelper.BlocksSight})
	id := em.AssignStableID(e)
	z.Entities.Insert(x, y, spatialindex.Id(id))
}

// TestSingleBlockerMatchesScenarioS5 covers scenario S5: player at (0,0),
// range 5, a single sight-blocking entity at (2,0). Cells (1,0) and (2,0)
// remain visible (the blocker itself and everything up to it), (3,0)
// through (5,0) are shadowed, and (2,1) — one row off the blocker's own
// axis — stays visible.
func TestSingleBlockerMatchesScenarioS5(t *testing.T) {
	em := newFovTestEM()
	z := openZone(11, 11)
	placeSightBlocker(em, z, 2, 0)

	Recompute(em, z, coords.LogicalPosition{X: 0, Y: 0}, 5)

	visible := map[[2]int]bool{{1, 0}: true, {2, 0}: true, {2, 1}: true}
	for _, c := range []([2]int){{3, 0}, {4, 0}, {5, 0}} {
		visible[c] = false
	}
	for c, want := range visible {
		if got := z.Visible.Get(c[0], c[1]); got != want {
			t.Fatalf("cell %v visible=%v, want %v", c, got, want)
		}
	}
}

// TestEmptyRoomNeighborsVisibleAtDistanceOne mirrors shadowcast.rs's own
// empty-room unit test: every cell adjacent to the origin is visible with
// no blockers present.
func TestEmptyRoomNeighborsVisibleAtDistanceOne(t *testing.T) {
	em := newFovTestEM()
	z := openZone(11, 11)

	Recompute(em, z, coords.LogicalPosition{X: 5, Y: 5}, 5)

	for _, d := range []([2]int){{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}} {
		x, y := 5+d[0], 5+d[1]
		if !z.Visible.Get(x, y) {
			t.Fatalf("cell (%d,%d) should be visible in an open room", x, y)
		}
	}
}

// TestExploredNeverRetracts covers spec.md §4.4's monotone exploration
// invariant: once a cell has been seen it stays Explored even after the
// viewer moves away and it falls out of the Visible set.
func TestExploredNeverRetracts(t *testing.T) {
	em := newFovTestEM()
	z := openZone(11, 11)

	Recompute(em, z, coords.LogicalPosition{X: 0, Y: 0}, 3)
	if !z.Explored.Get(1, 0) {
		t.Fatalf("cell (1,0) should be explored after the first FOV pass")
	}

	Recompute(em, z, coords.LogicalPosition{X: 10, Y: 10}, 1)
	if z.Visible.Get(1, 0) {
		t.Fatalf("cell (1,0) should no longer be visible once the viewer moved away")
	}
	if !z.Explored.Get(1, 0) {
		t.Fatalf("cell (1,0) must remain explored even after losing visibility")
	}
}

// TestVisionCacheSkipsRecomputeWhenViewerDidNotMove exercises the cache's
// stated purpose: a second call with the same origin is a no-op.
func TestVisionCacheSkipsRecomputeWhenViewerDidNotMove(t *testing.T) {
	em := newFovTestEM()
	z := openZone(11, 11)
	idx := coords.ZoneIndex(0)
	cache := NewVisionCache()

	viewers := map[coords.ZoneIndex]struct {
		Zone   *zone.Zone
		Origin coords.LogicalPosition
		Radius int
	}{
		idx: {Zone: z, Origin: coords.LogicalPosition{X: 0, Y: 0}, Radius: 3},
	}

	cache.RecomputeChanged(em, viewers)
	if !cache.Changed(idx) {
		t.Fatalf("first call for a new viewer should report changed")
	}

	cache.RecomputeChanged(em, viewers)
	if cache.Changed(idx) {
		t.Fatalf("second call with an unmoved viewer should not report changed")
	}
}
