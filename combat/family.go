package combat

import "frontiersim/common"

// WeaponFamily is a closed enumeration of the proficiency classes a weapon
// belongs to, recovered from the original prototype's
// src/domain/components/weapon_family.rs (SPEC_FULL.md §12 item 1). spec.md
// §4.5 step 2 only says "read attacker's corresponding proficiency stat"
// without naming the mapping; ProficiencyStat below is that mapping.
type WeaponFamily int

const (
	Rifle WeaponFamily = iota
	Shotgun
	Pistol
	Blade
	Cudgel
	Unarmed
)

// ProficiencyStat returns the StatKey an attacker's skill with this weapon
// family is read from.
func (f WeaponFamily) ProficiencyStat() common.StatKey {
	switch f {
	case Rifle:
		return common.StatRifleSkill
	case Shotgun:
		return common.StatShotgunSkill
	case Pistol:
		return common.StatPistolSkill
	case Blade:
		return common.StatBladeSkill
	case Cudgel:
		return common.StatCudgelSkill
	default:
		return common.StatUnarmedSkill
	}
}
