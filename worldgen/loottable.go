package worldgen

import "frontiersim/randgen"

// lootEntry pairs a prefab name with its relative weight.
type lootEntry struct {
	prefab string
	weight float64
}

// lootTable is a weighted discrete distribution over prefab names,
// generalized from the teacher's spawning.ProbabilityTable[T] to use the
// simulation's own randgen.Source instead of math/rand directly, and to
// fall back to its last entry on float-precision edge cases rather than
// returning no entry at all (spec.md §4.7 step 7).
type lootTable struct {
	entries []lootEntry
	total   float64
}

func newLootTable(entries ...lootEntry) lootTable {
	t := lootTable{entries: entries}
	for _, e := range entries {
		t.total += e.weight
	}
	return t
}

// roll picks one entry by cumulative weight: draw r in [0, total), walk
// the cumulative sum, return the first entry whose cumulative weight
// exceeds r. Ported conceptually from ProbabilityTable.GetRandomEntry,
// but falls back to the last entry instead of failing when floating-point
// rounding leaves the cursor just short of total (spec.md §4.7 step 7
// "fall back to last entry for float-precision safety").
func (t lootTable) roll(rng *randgen.Source) (string, bool) {
	if len(t.entries) == 0 || t.total <= 0 {
		return "", false
	}
	r := rng.Float64() * t.total
	cursor := 0.0
	for _, e := range t.entries {
		cursor += e.weight
		if r < cursor {
			return e.prefab, true
		}
	}
	return t.entries[len(t.entries)-1].prefab, true
}

// biomeLootTable returns the weighted loot/enemy table for a biome
// (spec.md §4.7 step 7 "biome-specific weighted tables").
func biomeLootTable(b BiomeType) lootTable {
	switch b {
	case BiomeForest:
		return newLootTable(
			lootEntry{"Goblin", 5},
			lootEntry{"Wolf", 3},
			lootEntry{"HerbPatch", 4},
			lootEntry{"Coin", 2},
		)
	case BiomeDesert:
		return newLootTable(
			lootEntry{"Scorpion", 4},
			lootEntry{"Bandit", 3},
			lootEntry{"Waterskin", 2},
		)
	case BiomeCavern:
		return newLootTable(
			lootEntry{"CaveBat", 5},
			lootEntry{"OreVein", 3},
			lootEntry{"Skeleton", 4},
		)
	case BiomeSwamp:
		return newLootTable(
			lootEntry{"Leech", 4},
			lootEntry{"PoisonMoss", 3},
			lootEntry{"Coin", 1},
		)
	case BiomeDustyPlains:
		return newLootTable(
			lootEntry{"Coyote", 3},
			lootEntry{"Tumbleweed", 2},
		)
	default: // BiomeOpenAir
		return newLootTable(lootEntry{"Bird", 1})
	}
}
