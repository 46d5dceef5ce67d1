package coords

import "frontiersim/config"

// ZoneIndex identifies one loaded or loadable zone by its flattened
// (x,y,z) coordinate within MAP_SIZE.
type ZoneIndex int

// ZoneCoord is the unflattened (x,y,z) zone coordinate.
type ZoneCoord struct {
	X, Y, Z int
}

// WorldProjection holds the map/zone sizing used to convert between world
// space, zone indices, and zone-local logical positions. It is a small
// value type (not a pointer-shared singleton) so tests can construct one
// with non-default sizes.
type WorldProjection struct {
	MapWidthZones  int
	MapHeightZones int
	MapDepthZones  int
	ZoneWidth      int
	ZoneHeight     int
}

// DefaultProjection uses the compile-time map/zone sizing from config.
func DefaultProjection() WorldProjection {
	return WorldProjection{
		MapWidthZones:  config.MapWidthZones,
		MapHeightZones: config.MapHeightZones,
		MapDepthZones:  config.MapDepthZones,
		ZoneWidth:      config.ZoneWidthTiles,
		ZoneHeight:     config.ZoneHeightTiles,
	}
}

// ZoneIdx flattens a zone coordinate: x*Hz*Dz + y*Dz + z.
func (p WorldProjection) ZoneIdx(x, y, z int) ZoneIndex {
	return ZoneIndex(x*p.MapHeightZones*p.MapDepthZones + y*p.MapDepthZones + z)
}

// ZoneXYZ is the inverse of ZoneIdx.
func (p WorldProjection) ZoneXYZ(idx ZoneIndex) ZoneCoord {
	i := int(idx)
	hd := p.MapHeightZones * p.MapDepthZones
	x := i / hd
	rem := i % hd
	y := rem / p.MapDepthZones
	z := rem % p.MapDepthZones
	return ZoneCoord{X: x, Y: y, Z: z}
}

// WorldToZoneIdx maps an absolute world tile position to the index of the
// zone that contains it.
func (p WorldProjection) WorldToZoneIdx(wx, wy, wz int) ZoneIndex {
	return p.ZoneIdx(floorDiv(wx, p.ZoneWidth), floorDiv(wy, p.ZoneHeight), wz)
}

// WorldToZoneLocal maps an absolute world tile position to its zone-local
// logical coordinate.
func (p WorldProjection) WorldToZoneLocal(wx, wy int) LogicalPosition {
	return LogicalPosition{X: floorMod(wx, p.ZoneWidth), Y: floorMod(wy, p.ZoneHeight)}
}

// ZoneOrigin returns the world-space (x,y) of the zone's (0,0) local cell.
func (p WorldProjection) ZoneOrigin(zc ZoneCoord) (int, int) {
	return zc.X * p.ZoneWidth, zc.Y * p.ZoneHeight
}

// InMapBounds reports whether a zone coordinate is within MAP_SIZE.
func (p WorldProjection) InMapBounds(zc ZoneCoord) bool {
	return zc.X >= 0 && zc.X < p.MapWidthZones &&
		zc.Y >= 0 && zc.Y < p.MapHeightZones &&
		zc.Z >= 0 && zc.Z < p.MapDepthZones
}

// PlaneNeighbors8 returns the eight zone coordinates adjacent to zc within
// its z-plane (N, S, E, W, and the four diagonals), omitting any that fall
// outside MAP_SIZE.
func (p WorldProjection) PlaneNeighbors8(zc ZoneCoord) []ZoneCoord {
	out := make([]ZoneCoord, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := ZoneCoord{X: zc.X + dx, Y: zc.Y + dy, Z: zc.Z}
			if p.InMapBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// VerticalNeighbors returns the zone above (z-1) and below (z+1) zc, in
// that order, omitting any outside MAP_SIZE.
func (p WorldProjection) VerticalNeighbors(zc ZoneCoord) []ZoneCoord {
	out := make([]ZoneCoord, 0, 2)
	up := ZoneCoord{X: zc.X, Y: zc.Y, Z: zc.Z - 1}
	down := ZoneCoord{X: zc.X, Y: zc.Y, Z: zc.Z + 1}
	if p.InMapBounds(up) {
		out = append(out, up)
	}
	if p.InMapBounds(down) {
		out = append(out, down)
	}
	return out
}

// floorDiv and floorMod implement Euclidean-style division so that
// negative world coordinates still land in [0, size).
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
