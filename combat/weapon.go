package combat

import (
	"frontiersim/ecshelper"
	"frontiersim/randgen"

	"github.com/bytearena/ecs"
)

// WeaponComponent is registered once by InitializeCombatComponents and
// attached to every weapon item entity. The built-in unarmed and default
// ranged attacks (defaultMelee, defaultRanged) are plain Weapon values
// returned by ResolveWeapon, not components attached to actors.
var WeaponComponent *ecs.Component

// WeaponKind distinguishes a melee weapon, whose range is always 1 and
// which bump attacks always fall back to, from a ranged one.
type WeaponKind int

const (
	MeleeWeaponKind WeaponKind = iota
	RangedWeaponKind
)

// Weapon is the single component backing both melee and ranged attacks
// (spec.md §3.6 `Weapon{weapon_type, damage_dice, can_damage[], range?,
// hit_effects[], current_ammo?, weapon_family, …}`). CurrentAmmo is nil
// for a weapon with unlimited ammunition (e.g. every melee weapon, and
// the default unarmed/ranged attacks).
type Weapon struct {
	Kind        WeaponKind
	Family      WeaponFamily
	DamageDice  randgen.DiceExpr
	CanDamage   []ecshelper.Material
	Range       int // Manhattan distance, ranged weapons only
	HitEffects  []HitEffect
	CurrentAmmo *int
	BulletSpeed float64 // tiles/tick; visual flight-time only, not read by PerformAttack
}

// CanDamageMaterial reports whether this weapon's damage type applies to
// the given inanimate material.
func (w Weapon) CanDamageMaterial(m ecshelper.Material) bool {
	for _, c := range w.CanDamage {
		if c == m {
			return true
		}
	}
	return false
}

// defaultMelee is the bare-handed attack every actor without an equipped
// weapon falls back to (spec.md §4.5 `DefaultMeleeAttack`).
func defaultMelee() Weapon {
	return Weapon{
		Kind:       MeleeWeaponKind,
		Family:     Unarmed,
		DamageDice: randgen.DiceExpr{Count: 1, Sides: 3},
		CanDamage:  []ecshelper.Material{ecshelper.MaterialFlesh},
	}
}

// defaultRanged is the bare-handed ranged fallback (spec.md §4.5
// `DefaultRangedAttack`), a short-range thrown improvisation so that
// creatures without a real ranged weapon can still engage at range.
func defaultRanged() Weapon {
	return Weapon{
		Kind:       RangedWeaponKind,
		Family:     Unarmed,
		DamageDice: randgen.DiceExpr{Count: 1, Sides: 2},
		CanDamage:  []ecshelper.Material{ecshelper.MaterialFlesh},
		Range:      3,
	}
}

// InitializeCombatComponents registers the components this package owns.
func InitializeCombatComponents(manager *ecs.Manager) {
	WeaponComponent = manager.NewComponent()
}
