package ai

import (
	"testing"

	"frontiersim/combat"
	"frontiersim/common"
	"frontiersim/conditions"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/equipment"
	"frontiersim/grid"
	"frontiersim/randgen"
	"frontiersim/spatialindex"
	"frontiersim/stableid"
	"frontiersim/zone"

	"github.com/bytearena/ecs"
)

type flatGen struct{}

func (flatGen) Generate(idx coords.ZoneIndex, seed uint32, neighbors zone.EdgeConstraints) zone.ZoneData {
	return zone.ZoneData{Terrain: grid.New[zone.Terrain](16, 16)}
}

func newAiTestRig(t *testing.T) (*common.EntityManager, *zone.Manager, *Runner) {
	em := common.NewEntityManager()
	common.InitializeCommonComponents(em.World)
	ecshelper.InitializePhysicalComponents(em.World)
	equipment.InitializeEquipmentComponents(em.World)
	conditions.InitializeConditionComponents(em.World)
	combat.InitializeCombatComponents(em.World)
	InitializeAIComponents(em.World)

	proj := coords.WorldProjection{MapWidthZones: 2, MapHeightZones: 2, MapDepthZones: 1, ZoneWidth: 16, ZoneHeight: 16}
	zm := zone.NewManager(proj, flatGen{}, nil, 1, em, nil, nil)
	zm.SetPlayerZone(proj.ZoneIdx(0, 0, 0))
	for i := 0; i < 20; i++ {
		zm.Tick()
	}

	rng := randgen.NewSource(1)
	return em, zm, NewRunner(em, zm, rng)
}

func spawnPlayer(em *common.EntityManager, zm *zone.Manager, pos coords.WorldPosition) stableid.Id {
	e := em.World.NewEntity()
	e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: pos})
	e.AddComponent(common.PlayerComponent, &common.Player{})
	e.AddComponent(ecshelper.HealthComponent, &ecshelper.Health{Current: 20, Max: 20})
	e.AddComponent(common.StatsComponent, func() *common.Stats { s := common.NewStats(0, 0, 0); return &s }())
	e.AddComponent(common.StatModifiersComponent, &common.StatModifiers{})
	id := em.AssignStableID(e)
	if z, ok := zm.ZoneAt(pos); ok {
		z.Entities.InsertPos(zm.Projection().WorldToZoneLocal(pos.X, pos.Y), spatialindex.Id(id))
	}
	return id
}

func spawnPlayerWithEntity(em *common.EntityManager, zm *zone.Manager, pos coords.WorldPosition) (stableid.Id, *ecs.Entity) {
	id := spawnPlayer(em, zm, pos)
	return id, common.FindByStableID(em, id)
}

func ecshelperHealth(e *ecs.Entity) *ecshelper.Health {
	return common.GetComponentType[*ecshelper.Health](e, ecshelper.HealthComponent)
}

func spawnMonster(em *common.EntityManager, zm *zone.Manager, pos coords.WorldPosition, tmpl Template) (stableid.Id, *ecs.Entity) {
	e := em.World.NewEntity()
	e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: pos})
	e.AddComponent(ecshelper.EnergyComponent, &ecshelper.Energy{Value: 1000})
	e.AddComponent(ecshelper.HealthComponent, &ecshelper.Health{Current: 10, Max: 10})
	e.AddComponent(common.StatsComponent, func() *common.Stats { s := common.NewStats(0, 0, 0); return &s }())
	e.AddComponent(common.StatModifiersComponent, &common.StatModifiers{})
	e.AddComponent(conditions.ActiveConditionsComponent, &conditions.ActiveConditions{})
	e.AddComponent(ControllerComponent, NewController(tmpl, pos))
	id := em.AssignStableID(e)
	if z, ok := zm.ZoneAt(pos); ok {
		z.Entities.InsertPos(zm.Projection().WorldToZoneLocal(pos.X, pos.Y), spatialindex.Id(id))
	}
	return id, e
}
