package ecshelper

import "testing"

func TestBlockedRequiresUnclearedBit(t *testing.T) {
	wall := Collider{Flags: Wall}
	walker := MovementCapabilities{Flags: CanWalk}

	if !Blocked(walker, wall) {
		t.Fatal("a walker should be blocked by a wall")
	}
}

func TestFlyerBlockedByWater(t *testing.T) {
	// Water blocks both walking and flying (only swimming crosses it).
	water := Collider{Flags: Water}
	flyer := MovementCapabilities{Flags: CanFly}

	if !Blocked(flyer, water) {
		t.Fatal("water should block a flyer too; only swimmers cross it")
	}
}

func TestSwimmerNotBlockedByWater(t *testing.T) {
	water := Collider{Flags: Water}
	swimmer := MovementCapabilities{Flags: CanSwim}

	if Blocked(swimmer, water) {
		t.Fatal("a swimmer should not be blocked by water")
	}
}

func TestAmphibiousNotBlockedByWaterOrGround(t *testing.T) {
	amphibious := MovementCapabilities{Flags: Amphibious}

	if Blocked(amphibious, Collider{Flags: Water}) {
		t.Fatal("amphibious mover should cross water")
	}
	if Blocked(amphibious, Collider{Flags: 0}) {
		t.Fatal("amphibious mover should cross open ground")
	}
}

func TestNoCollidingEntityNeverBlocks(t *testing.T) {
	walker := MovementCapabilities{Flags: CanWalk}
	if Blocked(walker, Collider{Flags: 0}) {
		t.Fatal("an empty collider should never block")
	}
}

func TestHealthApplyDamageFloorsAtZero(t *testing.T) {
	h := Health{Current: 5, Max: 10}
	if destroyed := h.ApplyDamage(3); destroyed {
		t.Fatal("health 2 remaining should not be destroyed")
	}
	if h.Current != 2 {
		t.Fatalf("Current = %d, want 2", h.Current)
	}

	if destroyed := h.ApplyDamage(50); !destroyed {
		t.Fatal("lethal damage should report destroyed")
	}
	if h.Current != 0 {
		t.Fatalf("Current = %d, want floored at 0", h.Current)
	}
}

func TestDestructibleApplyDamage(t *testing.T) {
	d := Destructible{Durability: 10, Max: 10, Material: MaterialWood}
	if destroyed := d.ApplyDamage(10); !destroyed {
		t.Fatal("exact lethal damage should destroy")
	}
	if d.Durability != 0 {
		t.Fatalf("Durability = %d, want 0", d.Durability)
	}
}

func TestEnergyHasEnergy(t *testing.T) {
	e := Energy{Value: 0}
	if !e.HasEnergy() {
		t.Fatal("energy 0 should be eligible to act")
	}
	e.Consume(1)
	if e.HasEnergy() {
		t.Fatal("negative energy should not be eligible to act")
	}
}
