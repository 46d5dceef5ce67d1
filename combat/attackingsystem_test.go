package combat

import (
	"testing"

	"frontiersim/common"
	"frontiersim/conditions"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/equipment"
	"frontiersim/randgen"
	"frontiersim/spatialindex"
	"frontiersim/stableid"
)

func newTestEntityManager() *common.EntityManager {
	em := common.NewEntityManager()
	common.InitializeCommonComponents(em.World)
	ecshelper.InitializePhysicalComponents(em.World)
	equipment.InitializeEquipmentComponents(em.World)
	conditions.InitializeConditionComponents(em.World)
	InitializeCombatComponents(em.World)
	return em
}

func spawnCombatant(em *common.EntityManager, pos coords.WorldPosition, health int) stableid.Id {
	e := em.World.NewEntity()
	e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: pos})
	e.AddComponent(ecshelper.HealthComponent, &ecshelper.Health{Current: health, Max: health})
	e.AddComponent(common.StatsComponent, &common.Stats{})
	e.AddComponent(common.StatModifiersComponent, &common.StatModifiers{})
	return em.AssignStableID(e)
}

func TestCriticalHitAlwaysConnects(t *testing.T) {
	em := newTestEntityManager()
	zoneIdx := spatialindex.New()
	attackerID := spawnCombatant(em, coords.WorldPosition{X: 0, Y: 0}, 10)
	targetID := spawnCombatant(em, coords.WorldPosition{X: 1, Y: 0}, 10)

	// Defender Dodge stat pushed absurdly high; only a critical should
	// still connect against it.
	target := common.FindByStableID(em, targetID)
	common.GetComponentType[*common.StatModifiers](target, common.StatModifiersComponent).
		Add(common.StatModifier{Source: common.IntrinsicSource("test"), Stat: common.StatDodge, Amount: 1000})

	rng := randgen.NewScriptedSource(12, 1)
	weapon := defaultMelee()

	result, err := PerformAttack(em, rng, zoneIdx, attackerID, targetID, weapon)
	if err != nil {
		t.Fatalf("PerformAttack: %v", err)
	}
	if !result.Critical || !result.Hit {
		t.Fatalf("result = %+v, want critical hit regardless of Dodge", result)
	}
}

func TestMeleeHitWithCritical(t *testing.T) {
	// Scenario S3: attacker proficiency 0, defender Dodge 0, forced RNG
	// stream [12, 1] (attacker raw=12). Expected: hit, critical, damage
	// applied once.
	em := newTestEntityManager()
	zoneIdx := spatialindex.New()
	attackerID := spawnCombatant(em, coords.WorldPosition{X: 0, Y: 0}, 10)
	targetID := spawnCombatant(em, coords.WorldPosition{X: 1, Y: 0}, 10)

	rng := randgen.NewScriptedSource(12, 1)
	weapon := defaultMelee()

	result, err := PerformAttack(em, rng, zoneIdx, attackerID, targetID, weapon)
	if err != nil {
		t.Fatalf("PerformAttack: %v", err)
	}
	if !result.Hit || !result.Critical {
		t.Fatalf("result = %+v, want hit and critical", result)
	}
	if result.Damage <= 0 {
		t.Fatalf("Damage = %d, want damage applied", result.Damage)
	}

	target := common.FindByStableID(em, targetID)
	health := common.GetComponentType[*ecshelper.Health](target, ecshelper.HealthComponent)
	if health.Current != 10-result.Damage {
		t.Fatalf("target health = %d, want %d (damage applied exactly once)", health.Current, 10-result.Damage)
	}
}

func TestKnockbackStopsBeforeWall(t *testing.T) {
	// Scenario S4: attacker at (5,5), target at (6,5), wall collider at
	// (8,5). Knockback strength 1.0, attacker Knockback stat 6 -> distance
	// 3. Expected: target ends at (7,5), stopped before the wall.
	em := newTestEntityManager()
	zoneIdx := spatialindex.New()
	attackerID := spawnCombatant(em, coords.WorldPosition{X: 5, Y: 5}, 10)
	targetID := spawnCombatant(em, coords.WorldPosition{X: 6, Y: 5}, 10)
	zoneIdx.Insert(6, 5, spatialindex.Id(targetID))

	wall := em.World.NewEntity()
	wall.AddComponent(common.PositionComponent, &common.Position{WorldPosition: coords.WorldPosition{X: 8, Y: 5}})
	wall.AddComponent(ecshelper.ColliderComponent, &ecshelper.Collider{Flags: ecshelper.Wall})
	wallID := em.AssignStableID(wall)
	zoneIdx.Insert(8, 5, spatialindex.Id(wallID))

	attacker := common.FindByStableID(em, attackerID)
	common.GetComponentType[*common.StatModifiers](attacker, common.StatModifiersComponent).
		Add(common.StatModifier{Source: common.IntrinsicSource("test"), Stat: common.StatKnockback, Amount: 6})

	weapon := defaultMelee()
	weapon.HitEffects = []HitEffect{{Kind: EffectKnockback, Chance: 1.0, StrengthMultiplier: 1.0}}

	rng := randgen.NewScriptedSource(12, 1)
	result, err := PerformAttack(em, rng, zoneIdx, attackerID, targetID, weapon)
	if err != nil {
		t.Fatalf("PerformAttack: %v", err)
	}
	if !result.Hit {
		t.Fatalf("expected hit, got %+v", result)
	}

	target := common.FindByStableID(em, targetID)
	pos := common.GetPosition(target)
	if pos.X != 7 || pos.Y != 5 {
		t.Fatalf("target position = (%d,%d), want (7,5)", pos.X, pos.Y)
	}

	cell, ok := zoneIdx.CellOf(spatialindex.Id(targetID))
	if !ok || cell.X != 7 || cell.Y != 5 {
		t.Fatalf("zone index cell = %+v (ok=%v), want (7,5)", cell, ok)
	}
}

func TestOutOfRangeRangedAttackStillConsumesAmmoNotDamage(t *testing.T) {
	em := newTestEntityManager()
	zoneIdx := spatialindex.New()
	attackerID := spawnCombatant(em, coords.WorldPosition{X: 0, Y: 0}, 10)
	targetID := spawnCombatant(em, coords.WorldPosition{X: 20, Y: 0}, 10)

	ammo := 3
	weapon := Weapon{Kind: RangedWeaponKind, Family: Pistol, Range: 5, CurrentAmmo: &ammo,
		DamageDice: randgen.DiceExpr{Count: 1, Sides: 6}, CanDamage: []ecshelper.Material{ecshelper.MaterialFlesh}}

	rng := randgen.NewScriptedSource(12, 1)
	result, err := PerformAttack(em, rng, zoneIdx, attackerID, targetID, weapon)
	if err != nil {
		t.Fatalf("PerformAttack: %v", err)
	}
	if !result.OutOfRange {
		t.Fatalf("expected OutOfRange, got %+v", result)
	}
	if ammo != 2 {
		t.Fatalf("ammo = %d, want 2 (consumed despite the miss)", ammo)
	}

	target := common.FindByStableID(em, targetID)
	health := common.GetComponentType[*ecshelper.Health](target, ecshelper.HealthComponent)
	if health.Current != 10 {
		t.Fatalf("health = %d, want undamaged at 10", health.Current)
	}
}

func TestWeaponResolutionPrefersExplicitOverEquipped(t *testing.T) {
	em := newTestEntityManager()
	attacker := em.World.NewEntity()
	attacker.AddComponent(common.PositionComponent, &common.Position{})
	em.AssignStableID(attacker)

	explicit := defaultRanged()
	resolved := ResolveWeapon(em, attacker, &explicit, false)
	if resolved.Kind != RangedWeaponKind || resolved.Family != Unarmed {
		t.Fatalf("resolved = %+v, want the explicit weapon returned unchanged", resolved)
	}
}

func TestBumpAttackFallsBackToMelee(t *testing.T) {
	em := newTestEntityManager()
	attacker := em.World.NewEntity()
	attacker.AddComponent(common.PositionComponent, &common.Position{})
	em.AssignStableID(attacker)

	resolved := ResolveWeapon(em, attacker, nil, true)
	if resolved.Kind != MeleeWeaponKind {
		t.Fatalf("bump attack resolved to %+v, want melee", resolved)
	}
}
