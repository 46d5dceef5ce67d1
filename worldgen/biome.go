package worldgen

import (
	"frontiersim/zone"
)

// BiomeType names the base-terrain fill rule for a zone (spec.md §4.7
// step 3). Selection is noise-driven, but z-layer always wins: OpenAir
// above the surface, Cavern below it, regardless of noise.
type BiomeType int

const (
	BiomeForest BiomeType = iota
	BiomeDesert
	BiomeCavern
	BiomeOpenAir
	BiomeSwamp
	BiomeDustyPlains
)

// biomeRegionZones is the coarse-noise scale (in zone units) biome
// selection samples at, so neighboring zones tend to share a biome rather
// than flickering zone-to-zone (grounded on the teacher's getNoiseScale:
// "higher scale = larger features").
const biomeRegionZones = 4

// selectBiome picks a zone's biome from a coarse noise sample over its
// zone coordinates (spec.md §4.7 step 3: "selection is derived from
// Perlin noise over (x,y) at the map scale, with z-layers defining
// open-air above / caverns below the surface"). surfaceZ is the z index
// dividing sky from ground; zones above it are OpenAir, zones below it
// are Cavern.
func selectBiome(zx, zy, zz int, surfaceZ int, seed uint32) BiomeType {
	if zz < surfaceZ {
		return BiomeOpenAir
	}
	if zz > surfaceZ {
		return BiomeCavern
	}

	n := coarseNoise(zx, zy, seed^0xB10E, biomeRegionZones)
	switch {
	case n < 0.2:
		return BiomeDesert
	case n < 0.45:
		return BiomeDustyPlains
	case n < 0.7:
		return BiomeForest
	case n < 0.85:
		return BiomeSwamp
	default:
		return BiomeCavern
	}
}

// featureDensity is the probability with which a tile is seeded as a
// feature cell before the CA pass (spec.md §4.7 step 4's per-biome
// density), ported from the teacher's getWalkThreshold table.
func (b BiomeType) featureDensity() float64 {
	switch b {
	case BiomeForest:
		return 0.35 // trees
	case BiomeDesert:
		return 0.08 // scattered rock outcrops
	case BiomeCavern:
		return 0.45 // rock walls
	case BiomeOpenAir:
		return 0.0
	case BiomeSwamp:
		return 0.25 // shallows/boulders
	case BiomeDustyPlains:
		return 0.15
	default:
		return 0.2
	}
}

// featurePrefab names the spawn descriptor a set CA feature cell becomes,
// and baseTerrain/featureTerrain name the two terrain values a biome's
// fill toggles between for cells not pinned by an edge constraint.
func (b BiomeType) baseTerrain() zone.Terrain {
	switch b {
	case BiomeForest:
		return zone.Grass
	case BiomeDesert:
		return zone.Sand
	case BiomeCavern:
		return zone.Dirt
	case BiomeOpenAir:
		return zone.OpenAir
	case BiomeSwamp:
		return zone.Swamp
	case BiomeDustyPlains:
		return zone.DyingGrass
	default:
		return zone.Grass
	}
}

func (b BiomeType) featureTerrain() zone.Terrain {
	switch b {
	case BiomeForest:
		return zone.Grass // trees are entities, not terrain; ground stays Grass
	case BiomeDesert:
		return zone.Gravel
	case BiomeCavern:
		return zone.Rock
	case BiomeOpenAir:
		return zone.OpenAir
	case BiomeSwamp:
		return zone.Shallows
	case BiomeDustyPlains:
		return zone.Gravel
	default:
		return zone.Dirt
	}
}

func (b BiomeType) featurePrefab() string {
	switch b {
	case BiomeForest:
		return "Tree"
	case BiomeDesert, BiomeCavern, BiomeDustyPlains:
		return "Boulder"
	default:
		return ""
	}
}
