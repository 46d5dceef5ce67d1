// Package ecshelper owns the physical-world components: collision and
// movement capability bitflags, turn energy, and the two kinds of
// damageable target (living Health, inanimate Destructible).
package ecshelper

import "github.com/bytearena/ecs"

var (
	ColliderComponent             *ecs.Component
	MovementCapabilitiesComponent *ecs.Component
	EnergyComponent               *ecs.Component
	HealthComponent               *ecs.Component
	DestructibleComponent         *ecs.Component
)

// ColliderFlags is a bitmask over what a cell's occupant blocks.
type ColliderFlags uint8

const (
	BlocksWalk ColliderFlags = 1 << iota
	BlocksFly
	BlocksSwim
	_ // reserved, matches the original's bit layout gap before BLOCKS_SIGHT
	_
	BlocksSight
	BlocksProjectile
	IsActor
)

// Solid blocks every movement mode; Wall additionally blocks sight and
// projectiles; Water blocks walking and flying but not swimming.
const (
	Solid ColliderFlags = BlocksWalk | BlocksFly | BlocksSwim
	Wall  ColliderFlags = Solid | BlocksSight | BlocksProjectile
	Water ColliderFlags = BlocksWalk | BlocksFly
)

// Collider is the component a cell's occupant carries to describe what it
// blocks (spec.md §3.6).
type Collider struct {
	Flags ColliderFlags
}

// Has reports whether every bit in mask is set.
func (c Collider) Has(mask ColliderFlags) bool {
	return c.Flags&mask == mask
}

// MovementFlags is a bitmask over what movement modes an entity has.
type MovementFlags uint8

const (
	CanWalk MovementFlags = 1 << iota
	CanFly
	CanSwim
)

const (
	Terrestrial MovementFlags = CanWalk
	Aquatic     MovementFlags = CanSwim
	Amphibious  MovementFlags = CanWalk | CanSwim
	Flying      MovementFlags = CanFly
)

// MovementCapabilities is the component describing which movement modes
// an entity can use (spec.md §3.6).
type MovementCapabilities struct {
	Flags MovementFlags
}

// Has reports whether every bit in mask is set.
func (m MovementCapabilities) Has(mask MovementFlags) bool {
	return m.Flags&mask == mask
}

// blockBitFor maps a single movement capability bit to the collider flag
// that capability can clear.
func blockBitFor(cap MovementFlags) ColliderFlags {
	switch cap {
	case CanWalk:
		return BlocksWalk
	case CanFly:
		return BlocksFly
	case CanSwim:
		return BlocksSwim
	default:
		return 0
	}
}

// Blocked reports whether a mover with the given capabilities is blocked
// by a cell whose collider flags are c: blocked iff no capability bit the
// mover has clears the corresponding block bit (spec.md §3.6).
func Blocked(mover MovementCapabilities, c Collider) bool {
	for _, cap := range []MovementFlags{CanWalk, CanFly, CanSwim} {
		if mover.Has(cap) && !c.Has(blockBitFor(cap)) {
			return false
		}
	}
	return true
}

// Energy is the turn-scheduling currency (spec.md §3.6, §4.3). An entity
// is eligible to act once its value is non-negative.
type Energy struct {
	Value int32
}

// HasEnergy reports whether the entity may currently act.
func (e Energy) HasEnergy() bool {
	return e.Value >= 0
}

// Add increases energy by amount. It is a plain addition with no clamp: a
// negative amount lowers the value.
func (e *Energy) Add(amount int32) {
	e.Value += amount
}

// Consume subtracts an action's energy cost.
func (e *Energy) Consume(amount int32) {
	e.Value -= amount
}

// Health is a living target's damage pool (spec.md §3.6).
type Health struct {
	Current int
	Max     int
}

// ApplyDamage subtracts dmg, floored at zero, and reports whether this
// brought current health to (or below) zero.
func (h *Health) ApplyDamage(dmg int) (destroyed bool) {
	h.Current -= dmg
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current <= 0
}

// Material names what an inanimate Destructible is made of, used to match
// a weapon's CanDamage list.
type Material int

const (
	MaterialFlesh Material = iota
	MaterialWood
	MaterialStone
	MaterialMetal
	MaterialGlass
)

// Destructible is an inanimate damageable target (spec.md §3.6).
type Destructible struct {
	Durability int
	Max        int
	Material   Material
}

// ApplyDamage subtracts dmg, floored at zero, and reports whether this
// destroyed it.
func (d *Destructible) ApplyDamage(dmg int) (destroyed bool) {
	d.Durability -= dmg
	if d.Durability < 0 {
		d.Durability = 0
	}
	return d.Durability <= 0
}

// InitializePhysicalComponents registers every component this package owns.
func InitializePhysicalComponents(manager *ecs.Manager) {
	ColliderComponent = manager.NewComponent()
	MovementCapabilitiesComponent = manager.NewComponent()
	EnergyComponent = manager.NewComponent()
	HealthComponent = manager.NewComponent()
	DestructibleComponent = manager.NewComponent()
}
