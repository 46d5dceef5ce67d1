package combat

import (
	"fmt"
	"math"

	"frontiersim/common"
	"frontiersim/conditions"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/equipment"
	"frontiersim/randgen"
	"frontiersim/spatialindex"
	"frontiersim/stableid"

	"github.com/bytearena/ecs"
)

// AttackInput describes one attack action (spec.md §4.5 "Attack (melee or
// ranged, unified)"). Weapon is nil to let ResolveWeapon pick it from the
// attacker's equipment and defaults. IsBump marks a move-into-occupied-cell
// attack, which always resolves to melee.
type AttackInput struct {
	AttackerID stableid.Id
	TargetID   stableid.Id
	Weapon     *Weapon
	IsBump     bool
}

// AttackResult reports what happened, for callers that want to log or
// message the player.
type AttackResult struct {
	Hit        bool
	Critical   bool
	Damage     int
	Destroyed  bool
	OutOfAmmo  bool
	OutOfRange bool
}

// ResolveWeapon picks the weapon an attack uses, in spec.md §4.5 order:
// explicit weapon id → main-hand equipped → DefaultRangedAttack (only for
// non-bump) → DefaultMeleeAttack. Bump attacks fall back to melee if the
// resolved weapon would otherwise be ranged.
func ResolveWeapon(em *common.EntityManager, attacker *ecs.Entity, explicit *Weapon, isBump bool) Weapon {
	var resolved Weapon
	switch {
	case explicit != nil:
		resolved = *explicit
	default:
		if mainHand := mainHandWeapon(em, attacker); mainHand != nil {
			resolved = *mainHand
		} else if !isBump {
			resolved = defaultRanged()
		} else {
			resolved = defaultMelee()
		}
	}

	if isBump && resolved.Kind == RangedWeaponKind {
		return defaultMelee()
	}
	return resolved
}

// mainHandWeapon looks up the attacker's equipped main-hand item, if any,
// and returns its Weapon component.
func mainHandWeapon(em *common.EntityManager, attacker *ecs.Entity) *Weapon {
	slots := common.GetComponentType[*equipment.EquipmentSlots](attacker, equipment.EquipmentSlotsComponent)
	if slots == nil {
		return nil
	}
	itemID := slots.Equipped(equipment.SlotMainHand)
	if itemID == stableid.NoId {
		return nil
	}
	itemEntity := common.FindByStableID(em, itemID)
	if itemEntity == nil {
		return nil
	}
	return common.GetComponentType[*Weapon](itemEntity, WeaponComponent)
}

// PerformAttack runs the full hit/damage/effect resolution for one target
// (spec.md §4.5). zoneIdx is the target's current zone's SpatialIndex;
// callers must pass the zone actually containing the target, and a
// knockback that would cross a zone boundary is clamped at the edge
// rather than migrating indices (full cross-zone knockback is a zone
// package concern, see DESIGN.md). The attacker's energy cost is the
// caller's responsibility to debit — it is owed unconditionally
// regardless of the outcome, including a miss or an out-of-range/out-of-
// ammo no-op.
func PerformAttack(em *common.EntityManager, rng *randgen.Source, zoneIdx *spatialindex.SpatialIndex, attackerID, targetID stableid.Id, weapon Weapon) (AttackResult, error) {
	attacker := common.FindByStableID(em, attackerID)
	target := common.FindByStableID(em, targetID)
	if attacker == nil || target == nil {
		return AttackResult{}, fmt.Errorf("combat: attacker or target not found")
	}

	if weapon.Kind == RangedWeaponKind {
		if weapon.CurrentAmmo != nil && *weapon.CurrentAmmo == 0 {
			return AttackResult{OutOfAmmo: true}, nil
		}
		attackerPos := common.GetPosition(attacker)
		targetPos := common.GetPosition(target)
		if attackerPos == nil || targetPos == nil || attackerPos.ManhattanDistance2D(targetPos.WorldPosition) > weapon.Range {
			if weapon.CurrentAmmo != nil {
				*weapon.CurrentAmmo--
			}
			return AttackResult{OutOfRange: true}, nil
		}
	}

	attAttr := common.GetAttributes(attacker)
	defAttr := common.GetAttributes(target)

	raw := rng.D12()
	critical := raw == 12
	attackTotal := raw + attAttr.Get(weapon.Family.ProficiencyStat())
	defenseTotal := rng.D12() + defAttr.Get(common.StatDodge)

	hit := critical || attackTotal >= defenseTotal

	if weapon.Kind == RangedWeaponKind && weapon.CurrentAmmo != nil {
		*weapon.CurrentAmmo--
	}

	if !hit {
		return AttackResult{Hit: false, Critical: critical}, nil
	}

	damage := weapon.DamageDice.Roll(rng)
	destroyed := applyDamage(target, weapon, damage)

	if destroyed {
		em.Despawn(target)
	} else {
		applyHitEffects(em, rng, zoneIdx, attacker, target, weapon, attAttr)
	}

	return AttackResult{Hit: true, Critical: critical, Damage: damage, Destroyed: destroyed}, nil
}

// applyDamage applies dmg to whichever damageable component the target
// carries that the weapon can affect (spec.md §4.5 "If hit"): Health/Flesh
// takes priority over Destructible, per the spec's ordering.
func applyDamage(target *ecs.Entity, weapon Weapon, damage int) (destroyed bool) {
	if health := common.GetComponentType[*ecshelper.Health](target, ecshelper.HealthComponent); health != nil && weapon.CanDamageMaterial(ecshelper.MaterialFlesh) {
		return health.ApplyDamage(damage)
	}
	if destructible := common.GetComponentType[*ecshelper.Destructible](target, ecshelper.DestructibleComponent); destructible != nil && weapon.CanDamageMaterial(destructible.Material) {
		return destructible.ApplyDamage(damage)
	}
	return false
}

// applyHitEffects rolls each of the weapon's hit effects independently and
// applies the ones that land (spec.md §4.5 "Hit effects roll
// independently per effect").
func applyHitEffects(em *common.EntityManager, rng *randgen.Source, zoneIdx *spatialindex.SpatialIndex, attacker, target *ecs.Entity, weapon Weapon, attAttr common.Attributes) {
	for _, effect := range weapon.HitEffects {
		if !rng.Bool(effect.Chance) {
			continue
		}
		if effect.Kind == EffectKnockback {
			applyKnockback(em, zoneIdx, attacker, target, attAttr, effect.StrengthMultiplier)
			continue
		}
		kind, ok := effect.conditionKind()
		if !ok {
			continue
		}
		active := common.GetComponentType[*conditions.ActiveConditions](target, conditions.ActiveConditionsComponent)
		if active == nil {
			active = &conditions.ActiveConditions{}
			target.AddComponent(conditions.ActiveConditionsComponent, active)
		}
		active.Apply(conditions.New(kind, common.StableIDOf(attacker)))
	}
}

// applyKnockback steps target away from attacker along the primary axis,
// stopping before the first cell occupied by a blocking entity (spec.md
// §4.5 "Knockback").
func applyKnockback(em *common.EntityManager, zoneIdx *spatialindex.SpatialIndex, attacker, target *ecs.Entity, attAttr common.Attributes, strengthMultiplier float64) {
	targetPos := common.GetPosition(target)
	attackerPos := common.GetPosition(attacker)
	if targetPos == nil || attackerPos == nil {
		return
	}

	distance := int(math.Round(float64(attAttr.Get(common.StatKnockback)) / 2 * strengthMultiplier))
	if distance <= 0 {
		return
	}

	dir := coords.DirectionTowards(attackerPos.WorldPosition, targetPos.WorldPosition)
	current := targetPos.WorldPosition
	for step := 0; step < distance; step++ {
		next := current.Step(dir)
		if cellBlocked(em, zoneIdx, next) {
			break
		}
		current = next
	}
	if current == targetPos.WorldPosition {
		return
	}

	targetID := common.StableIDOf(target)
	zoneIdx.Remove(spatialindex.Id(targetID))
	zoneIdx.Insert(current.X, current.Y, spatialindex.Id(targetID))
	targetPos.WorldPosition = current
}

// cellBlocked reports whether any entity occupying pos carries a Collider
// that blocks walking — knockback treats the mover as a walker regardless
// of its real movement capabilities, matching the original's simplified
// physics.
func cellBlocked(em *common.EntityManager, zoneIdx *spatialindex.SpatialIndex, pos coords.WorldPosition) bool {
	for _, id := range zoneIdx.At(pos.X, pos.Y) {
		entity := common.FindByStableID(em, stableid.Id(id))
		if entity == nil {
			continue
		}
		if collider := common.GetComponentType[*ecshelper.Collider](entity, ecshelper.ColliderComponent); collider != nil && collider.Has(ecshelper.BlocksWalk) {
			return true
		}
	}
	return false
}
