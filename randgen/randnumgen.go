// Package randgen is the simulation's single RNG resource. Every system
// that needs randomness borrows a *Source exclusively for its operation
// and nothing else seeds its own randomness, so that the whole run is
// reproducible from one seed (spec.md §5, §6.4).
package randgen

import "math/rand"

// Source wraps a math/rand.Rand seeded deterministically. The teacher's
// original randgen package used crypto/rand, which cannot be reproduced
// from a recorded seed; this is a deliberate redesign (see DESIGN.md).
//
// scripted, when non-nil, overrides GetDiceRoll/D12/Intn to replay a fixed
// sequence instead of sampling rng — used by tests that need to force a
// specific roll (e.g. a forced critical hit) rather than search for a seed
// that happens to produce it.
type Source struct {
	rng       *rand.Rand
	scripted  []int
	scriptPos int
}

// NewScriptedSource builds a Source that replays rolls in order for every
// call to GetDiceRoll/D12/Intn, holding the final value once exhausted.
// Bool and Float64 are unaffected and still sample real randomness, since
// hit-effect tests force certainty via probability 0 or 1 instead.
func NewScriptedSource(rolls ...int) *Source {
	return &Source{rng: rand.New(rand.NewSource(1)), scripted: rolls}
}

func (s *Source) nextScripted() (int, bool) {
	if s.scripted == nil {
		return 0, false
	}
	if s.scriptPos >= len(s.scripted) {
		return s.scripted[len(s.scripted)-1], true
	}
	v := s.scripted[s.scriptPos]
	s.scriptPos++
	return v, true
}

// NewSource creates a Source seeded from seed.
func NewSource(seed uint32) *Source {
	return &Source{rng: rand.New(rand.NewSource(int64(seed)))}
}

// NewDerivedSource creates a Source deterministically derived from a base
// seed and a zone index, so that regenerating the same zone from the same
// world seed always reproduces the same terrain and spawns (spec.md §4.7
// step 1: "Seed RNG from (seed, zone_idx)").
func NewDerivedSource(worldSeed uint32, zoneIdx int) *Source {
	mixed := mix(uint64(worldSeed), uint64(uint32(zoneIdx)))
	return &Source{rng: rand.New(rand.NewSource(int64(mixed)))}
}

// mix combines two 32-bit values into a well-distributed 63-bit seed using
// a splitmix64-style finalizer, so adjacent zone indices don't produce
// correlated RNG streams.
func mix(a, b uint64) int64 {
	z := (a << 32) | b
	z += 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	if z < 0 {
		z = -z
	}
	return int64(z & 0x7FFFFFFFFFFFFFFF)
}

// GetDiceRoll returns a uniform value in [1, num].
func (s *Source) GetDiceRoll(num int) int {
	if v, ok := s.nextScripted(); ok {
		return v
	}
	if num <= 0 {
		return 1
	}
	return s.rng.Intn(num) + 1
}

// GetRandomBetween returns a uniform value in [low, high], inclusive.
func (s *Source) GetRandomBetween(low, high int) int {
	if high <= low {
		return low
	}
	return low + s.rng.Intn(high-low+1)
}

// Float64 returns a uniform value in [0, 1), used by hit-effect chance
// rolls and weighted loot picks.
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Bool returns true with the given probability (clamped to [0,1]).
func (s *Source) Bool(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	return s.rng.Float64() < probability
}

// Intn returns a uniform value in [0, n).
func (s *Source) Intn(n int) int {
	if v, ok := s.nextScripted(); ok {
		return v
	}
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// D12 rolls the combat system's d12: a uniform value in [1, 12].
func (s *Source) D12() int {
	return s.GetDiceRoll(12)
}
