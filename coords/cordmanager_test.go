package coords

import "testing"

func TestZoneIdxRoundTrip(t *testing.T) {
	p := DefaultProjection()

	cases := []ZoneCoord{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 2, Z: 3},
		{X: p.MapWidthZones - 1, Y: p.MapHeightZones - 1, Z: p.MapDepthZones - 1},
	}

	for _, zc := range cases {
		idx := p.ZoneIdx(zc.X, zc.Y, zc.Z)
		got := p.ZoneXYZ(idx)
		if got != zc {
			t.Errorf("ZoneXYZ(ZoneIdx(%v)) = %v, want %v", zc, got, zc)
		}
	}
}

func TestWorldToZoneIdxAndLocal(t *testing.T) {
	p := DefaultProjection()

	idx := p.WorldToZoneIdx(p.ZoneWidth+5, 3, 2)
	zc := p.ZoneXYZ(idx)
	if zc.X != 1 || zc.Y != 0 || zc.Z != 2 {
		t.Fatalf("WorldToZoneIdx landed on %v, want {1 0 2}", zc)
	}

	local := p.WorldToZoneLocal(p.ZoneWidth+5, 3)
	if local.X != 5 || local.Y != 3 {
		t.Fatalf("WorldToZoneLocal = %v, want {5 3}", local)
	}
}

func TestWorldToZoneLocalNegativeWrapsIntoBounds(t *testing.T) {
	p := DefaultProjection()
	local := p.WorldToZoneLocal(-1, -1)
	if local.X != p.ZoneWidth-1 || local.Y != p.ZoneHeight-1 {
		t.Fatalf("WorldToZoneLocal(-1,-1) = %v, want wrap to bottom-right cell", local)
	}
}

func TestPlaneNeighbors8ExcludesOutOfBounds(t *testing.T) {
	p := DefaultProjection()
	corner := ZoneCoord{X: 0, Y: 0, Z: 0}
	neighbors := p.PlaneNeighbors8(corner)
	if len(neighbors) != 3 {
		t.Fatalf("corner zone should have 3 in-bounds plane neighbors, got %d", len(neighbors))
	}
	for _, n := range neighbors {
		if !p.InMapBounds(n) {
			t.Errorf("neighbor %v out of bounds", n)
		}
	}
}

func TestVerticalNeighborsAtEdges(t *testing.T) {
	p := DefaultProjection()

	top := p.VerticalNeighbors(ZoneCoord{X: 0, Y: 0, Z: 0})
	if len(top) != 1 || top[0].Z != 1 {
		t.Fatalf("top z-layer should only have a neighbor below, got %v", top)
	}

	bottom := p.VerticalNeighbors(ZoneCoord{X: 0, Y: 0, Z: p.MapDepthZones - 1})
	if len(bottom) != 1 || bottom[0].Z != p.MapDepthZones-2 {
		t.Fatalf("bottom z-layer should only have a neighbor above, got %v", bottom)
	}
}
