package worldgen

// hashNoise is a deterministic, coordinate-hash based noise sample in
// [0, 1), grounded on the teacher's worldmap.PerlinBiomeGenerator
// simplexNoise/getTileNoise helpers (a splitmix64-style bit mixer applied
// to the coordinates rather than true Perlin gradients). Using a pure
// function of (x, y, seed) instead of a pre-generated grid means biome
// and feature selection stay deterministic per spec.md §4.7 step 1
// without the generator needing to materialize a map-wide noise field.
func hashNoise(x, y int, seed uint32) float64 {
	hash := uint64(73856093)
	hash ^= uint64(uint32(x)) * 19349663
	hash ^= uint64(uint32(y)) * 83492791
	hash ^= uint64(seed) * 0x9E3779B97F4A7C15

	hash ^= hash >> 33
	hash *= 0xff51afd7ed558ccd
	hash ^= hash >> 33
	hash *= 0xc4ceb9fe1a85ec53
	hash ^= hash >> 33

	return float64(hash%1_000_000_000) / 1_000_000_000.0
}

// coarseNoise samples hashNoise at a reduced coordinate resolution so
// nearby inputs share a value, producing larger, smoother features than
// hashNoise's per-cell jitter (the teacher's getNoiseScale knob, spec.md
// §4.7 step 3 "at the map scale").
func coarseNoise(x, y int, seed uint32, scale int) float64 {
	if scale < 1 {
		scale = 1
	}
	return hashNoise(floorDivInt(x, scale), floorDivInt(y, scale), seed)
}

func floorDivInt(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
