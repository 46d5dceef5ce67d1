package zone

import (
	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/ecshelper"

	"github.com/bytearena/ecs"
)

// SpawnFunc instantiates one SpawnDescriptor into a live entity at a world
// position, registers it with a stable id, and returns it. Managers accept
// an injected SpawnFunc rather than owning prefab knowledge directly,
// since the prefab catalogue is a content concern, not a zone-streaming
// one.
type SpawnFunc func(em *common.EntityManager, prefab string, pos coords.WorldPosition) *ecs.Entity

// DefaultSpawn implements a minimal built-in prefab catalogue covering the
// feature kinds worldgen actually emits (trees, rocks, loot drops). A
// fuller game would inject its own SpawnFunc backed by a content-authored
// prefab table; this one is enough to make generated zones populate with
// real, collidable entities.
func DefaultSpawn(em *common.EntityManager, prefab string, pos coords.WorldPosition) *ecs.Entity {
	e := em.World.NewEntity()
	e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: pos})

	switch prefab {
	case "Tree":
		e.AddComponent(ecshelper.ColliderComponent, &ecshelper.Collider{Flags: ecshelper.BlocksWalk | ecshelper.BlocksSight})
		e.AddComponent(ecshelper.DestructibleComponent, &ecshelper.Destructible{Durability: 10, Max: 10, Material: ecshelper.MaterialWood})
	case "Boulder":
		e.AddComponent(ecshelper.ColliderComponent, &ecshelper.Collider{Flags: ecshelper.Wall})
		e.AddComponent(ecshelper.DestructibleComponent, &ecshelper.Destructible{Durability: 30, Max: 30, Material: ecshelper.MaterialStone})
	default:
		// Loot and creature prefabs are left as a bare positioned entity;
		// callers that need real item/AI components apply them after Spawn
		// returns (worldgen only emits the descriptor, not the full rig).
	}

	em.AssignStableID(e)
	return e
}
