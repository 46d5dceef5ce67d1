package sim

import (
	"frontiersim/combat"
	"frontiersim/common"
	"frontiersim/config"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/randgen"
	"frontiersim/spatialindex"
	"frontiersim/stableid"
	"frontiersim/zone"

	"github.com/bytearena/ecs"
)

// speedAdjusted applies the attacker's Speed stat to a movement-like base
// cost: cost = base - 2*Speed, floored at 1 (spec.md §4.3).
func speedAdjusted(base int32, speed int) int32 {
	cost := base - 2*int32(speed)
	if cost < 1 {
		cost = 1
	}
	return cost
}

func consumeEnergy(entity *ecs.Entity, cost int32) {
	if e := common.GetComponentType[*ecshelper.Energy](entity, ecshelper.EnergyComponent); e != nil {
		e.Consume(cost)
	}
}

// Move attempts to step an entity to newPos (spec.md §4.5 "Move").
// Precondition: the destination cell is not blocked for the mover's
// MovementCapabilities, by either terrain or an occupying Collider. On
// success: Position is updated, the entity's zone spatial index entry
// migrates (crossing zones transparently, since Manager.ZoneAt resolves
// whichever zone currently contains newPos), and move energy is consumed.
// On failure: no state change and no energy is consumed (spec.md §7
// "precondition failure").
func Move(em *common.EntityManager, zm *zone.Manager, moverID stableid.Id, newPos coords.WorldPosition) (moved bool) {
	mover := common.FindByStableID(em, moverID)
	if mover == nil {
		return false
	}
	pos := common.GetPosition(mover)
	if pos == nil {
		return false
	}

	destZone, ok := zm.ZoneAt(newPos)
	if !ok {
		return false
	}
	local := zm.Projection().WorldToZoneLocal(newPos.X, newPos.Y)

	var moverCaps ecshelper.MovementCapabilities
	if caps := common.GetComponentType[*ecshelper.MovementCapabilities](mover, ecshelper.MovementCapabilitiesComponent); caps != nil {
		moverCaps = *caps
	}
	for _, occupantRaw := range destZone.Entities.AtPos(local) {
		occupant := common.FindByStableID(em, stableid.Id(occupantRaw))
		if occupant == nil {
			continue
		}
		if collider := common.GetComponentType[*ecshelper.Collider](occupant, ecshelper.ColliderComponent); collider != nil {
			if ecshelper.Blocked(moverCaps, *collider) {
				return false
			}
		}
	}
	terrainBlocks := destZone.Terrain.GetPos(local).BlocksWalk()
	if terrainBlocks && !moverCaps.Has(ecshelper.CanFly) && !moverCaps.Has(ecshelper.CanSwim) {
		return false
	}

	if srcZone, hadSrc := zm.ZoneAt(pos.WorldPosition); hadSrc {
		srcZone.Entities.Remove(spatialindex.Id(moverID))
	}
	destZone.Entities.InsertPos(local, spatialindex.Id(moverID))
	pos.WorldPosition = newPos

	attrs := common.GetAttributes(mover)
	consumeEnergy(mover, speedAdjusted(config.EnergyCostMove, attrs.Get(common.StatSpeed)))
	return true
}

// Wait consumes wait energy with no other effect (spec.md §4.5 "Wait").
func Wait(em *common.EntityManager, entityID stableid.Id) {
	entity := common.FindByStableID(em, entityID)
	if entity == nil {
		return
	}
	consumeEnergy(entity, config.EnergyCostWait)
}

// Attack resolves a melee or ranged attack (spec.md §4.5 "Attack"),
// looking up the zone that currently hosts the target to pass combat the
// spatial index it needs for knockback. Energy is consumed unconditionally
// on the attacker, including on a miss or an out-of-range/out-of-ammo
// no-op (spec.md §4.5 "the energy cost is owed regardless of outcome").
func Attack(em *common.EntityManager, zm *zone.Manager, rng *randgen.Source, attackerID, targetID stableid.Id, explicitWeapon *combat.Weapon, isBump bool) (combat.AttackResult, error) {
	attacker := common.FindByStableID(em, attackerID)
	target := common.FindByStableID(em, targetID)
	if attacker == nil || target == nil {
		return combat.AttackResult{}, nil
	}

	targetPos := common.GetPosition(target)
	targetZone, ok := zm.ZoneAt(targetPos.WorldPosition)
	if !ok {
		return combat.AttackResult{}, nil
	}

	weapon := combat.ResolveWeapon(em, attacker, explicitWeapon, isBump)
	result, err := combat.PerformAttack(em, rng, targetZone.Entities, attackerID, targetID, weapon)

	cost := int32(config.EnergyCostAttack)
	if weapon.Kind == combat.RangedWeaponKind {
		cost = config.EnergyCostShoot
	}
	consumeEnergy(attacker, cost)
	return result, err
}
