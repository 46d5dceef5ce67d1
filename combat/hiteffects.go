package combat

import "frontiersim/conditions"

// HitEffectKind discriminates which rider a weapon can apply on a
// successful hit (spec.md §4.5 "Hit effects roll independently per
// effect").
type HitEffectKind int

const (
	EffectKnockback HitEffectKind = iota
	EffectPoison
	EffectBleeding
	EffectBurning
)

// HitEffect is one probabilistic rider attached to a weapon. Chance is
// sampled independently of every other effect on the same weapon and of
// the hit/miss roll itself. StrengthMultiplier only matters for
// EffectKnockback.
type HitEffect struct {
	Kind               HitEffectKind
	Chance             float64
	StrengthMultiplier float64
}

// conditionKind maps a non-knockback hit effect to the condition kind it
// applies.
func (e HitEffect) conditionKind() (conditions.Kind, bool) {
	switch e.Kind {
	case EffectPoison:
		return conditions.Poisoned, true
	case EffectBleeding:
		return conditions.Bleeding, true
	case EffectBurning:
		return conditions.Burning, true
	default:
		return 0, false
	}
}
