// Package common hosts the entity-manager wrapper and the handful of
// components every subsystem needs regardless of domain (identity,
// position, the logical clock).
package common

import (
	"frontiersim/coords"
	"frontiersim/stableid"
)

// Position is the authoritative world-space location component
// (spec.md §3.6 `Position {x,y,z}`).
type Position struct {
	coords.WorldPosition
}

// StableIdComp wraps a stableid.Id as a component so it can be attached to
// an entity and located via GetComponentType like any other component.
type StableIdComp struct {
	Id stableid.Id
}

// Name is a human-readable label, used by logging and save diagnostics.
type Name struct {
	NameStr string
}

// Clock is the simulation's logical time resource (spec.md §3.7). tick is
// the authoritative time; one tick is 1/1000 of a turn. TickDelta is
// nonzero only during a "no acting entity" scheduler step.
type Clock struct {
	Tick        uint32
	TickDelta   uint32
	ForceUpdate bool
}

// Advance moves the clock forward by delta ticks and records it as the
// last delta applied. The scheduler never decreases Tick.
func (c *Clock) Advance(delta uint32) {
	c.Tick += delta
	c.TickDelta = delta
}

// ClearDelta resets TickDelta to zero; called once an entity turn (rather
// than a "no acting entity" step) has been processed, since spec.md §4.3
// requires TickDelta to be zero during entity turns.
func (c *Clock) ClearDelta() {
	c.TickDelta = 0
}
