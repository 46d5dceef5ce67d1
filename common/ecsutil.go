package common

import (
	"frontiersim/stableid"

	"github.com/bytearena/ecs"
)

var (
	PositionComponent *ecs.Component
	NameComponent     *ecs.Component
	StableIdComponent *ecs.Component
	VisionComponent   *ecs.Component

	// AllEntitiesTag queries all entities in the ECS world (empty component set).
	AllEntitiesTag ecs.Tag
)

// EntityManager wraps the ECS library's manager, the per-purpose tag
// table, and the stable id registry all simulation code mutates entities
// through.
type EntityManager struct {
	World     *ecs.Manager
	WorldTags map[string]ecs.Tag
	Ids       *stableid.Registry
}

// NewEntityManager creates an EntityManager with an empty world.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		World:     ecs.NewManager(),
		WorldTags: make(map[string]ecs.Tag),
		Ids:       stableid.NewRegistry(),
	}
}

// InitializeCommonComponents registers the components this package owns
// and the catch-all AllEntitiesTag. Must run once before any entity is
// spawned.
func InitializeCommonComponents(manager *ecs.Manager) {
	PositionComponent = manager.NewComponent()
	NameComponent = manager.NewComponent()
	StableIdComponent = manager.NewComponent()
	PlayerComponent = manager.NewComponent()
	VisionComponent = manager.NewComponent()
	StatsComponent = manager.NewComponent()
	StatModifiersComponent = manager.NewComponent()
	AllEntitiesTag = ecs.BuildTag()
}

// GetComponentType retrieves a component of type T from an entity pointer.
// Returns the zero value of T if the entity does not carry the component
// or component data is the wrong type — callers never need to recover
// from a panic themselves.
func GetComponentType[T any](entity *ecs.Entity, component *ecs.Component) (result T) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
		}
	}()

	if c, ok := entity.GetComponentData(component); ok {
		return c.(T)
	}
	var zero T
	return zero
}

// GetComponentTypeByID retrieves a component of type T from an entity by
// id. Returns the zero value if the entity or component isn't found.
func GetComponentTypeByID[T any](manager *EntityManager, entityID ecs.EntityID, component *ecs.Component) T {
	entity := FindEntityByID(manager, entityID)
	if entity == nil {
		var zero T
		return zero
	}
	return GetComponentType[T](entity, component)
}

// GetComponentTypeByIDWithTag is GetComponentTypeByID restricted to a tag
// query, used when callers already know which tag the entity lives under
// and want to avoid scanning the whole world.
func GetComponentTypeByIDWithTag[T any](manager *EntityManager, entityID ecs.EntityID, tag ecs.Tag, component *ecs.Component) T {
	for _, result := range manager.World.Query(tag) {
		if result.Entity.GetID() == entityID {
			return GetComponentType[T](result.Entity, component)
		}
	}
	var zero T
	return zero
}

// GetPosition returns the Position component from an entity.
func GetPosition(e *ecs.Entity) *Position {
	return GetComponentType[*Position](e, PositionComponent)
}

// GetPositionByID returns the Position component by entity id, or nil.
func GetPositionByID(manager *EntityManager, entityID ecs.EntityID) *Position {
	return GetComponentTypeByID[*Position](manager, entityID, PositionComponent)
}

// FindEntityByID scans the world for the entity with the given id.
// Returns nil ("not found", not an error) if it has been despawned —
// callers must treat a nil result as a no-op (spec.md §4.1).
func FindEntityByID(manager *EntityManager, entityID ecs.EntityID) *ecs.Entity {
	for _, result := range manager.World.Query(AllEntitiesTag) {
		if result.Entity.GetID() == entityID {
			return result.Entity
		}
	}
	return nil
}

// FindByStableID resolves a stable id all the way to an *ecs.Entity,
// returning nil if the id is unknown or the entity has been despawned.
func FindByStableID(manager *EntityManager, id stableid.Id) *ecs.Entity {
	entID, ok := manager.Ids.Lookup(id)
	if !ok {
		return nil
	}
	return FindEntityByID(manager, entID)
}

// Despawn removes an entity from the world and unregisters its stable id
// (if any), keeping the two in lockstep the same frame (spec.md §4.1
// "Despawned entities are unregistered on the same frame").
func (em *EntityManager) Despawn(entity *ecs.Entity) {
	if entity == nil {
		return
	}
	em.Ids.UnregisterEntity(entity.GetID())
	em.World.DisposeEntity(entity)
}

// DespawnByID is Despawn taking an entity id, a no-op if the id is
// already gone.
func (em *EntityManager) DespawnByID(entityID ecs.EntityID) {
	entity := FindEntityByID(em, entityID)
	em.Despawn(entity)
}

// NextStableID allocates a fresh stable id without registering it yet.
func (em *EntityManager) NextStableID() stableid.Id {
	return em.Ids.Next()
}

// AssignStableID attaches a StableIdComp to entity and registers it in
// the id registry, returning the id.
func (em *EntityManager) AssignStableID(entity *ecs.Entity) stableid.Id {
	id := em.Ids.Next()
	entity.AddComponent(StableIdComponent, &StableIdComp{Id: id})
	em.Ids.Register(id, entity.GetID())
	return id
}

// RestoreStableID is AssignStableID for the load path, where the stable
// id is already known (it came from the save file) rather than freshly
// allocated.
func (em *EntityManager) RestoreStableID(entity *ecs.Entity, id stableid.Id) {
	entity.AddComponent(StableIdComponent, &StableIdComp{Id: id})
	em.Ids.Register(id, entity.GetID())
}

// StableIDOf returns the stable id of entity, or stableid.NoId if it
// doesn't carry one.
func StableIDOf(entity *ecs.Entity) stableid.Id {
	comp := GetComponentType[*StableIdComp](entity, StableIdComponent)
	if comp == nil {
		return stableid.NoId
	}
	return comp.Id
}
