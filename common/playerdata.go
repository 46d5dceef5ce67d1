package common

import "github.com/bytearena/ecs"

// PlayerComponent marks the unique player entity.
var PlayerComponent *ecs.Component

// Player is a marker component; the entity carrying it is the one whose
// turn the scheduler awaits input for (spec.md §4.3 step 3).
type Player struct{}

// Vision is the player-only perception range component consumed by the
// FOV engine (spec.md §3.6 `Vision{range}`).
type Vision struct {
	Range int
}
