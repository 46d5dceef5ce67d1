package fovengine

import (
	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/zone"

	"github.com/norendren/go-fov/fov"
)

// Recompute runs one shadowcast from origin out to radius tiles, clears
// z's previous Visible grid, and marks every tile go-fov reports visible
// (spec.md §4.4 "FOV is recomputed from scratch every time the viewer's
// position or the terrain around it changes" — no incremental FOV).
// Explored only ever grows, via Zone.MarkVisible.
func Recompute(em *common.EntityManager, z *zone.Zone, origin coords.LogicalPosition, radius int) {
	z.ClearVisible()

	view := fov.New()
	view.Compute(newTransparencyMap(em, z), origin.X, origin.Y, radius)

	w, h := z.Terrain.Width(), z.Terrain.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if view.IsVisible(x, y) {
				z.MarkVisible(coords.LogicalPosition{X: x, Y: y})
			}
		}
	}
}
