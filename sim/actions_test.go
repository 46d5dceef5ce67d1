package sim

import (
	"testing"

	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/equipment"
	"frontiersim/grid"
	"frontiersim/spatialindex"
	"frontiersim/stableid"
	"frontiersim/zone"
)

func newActionsTestManager(t *testing.T) (*common.EntityManager, *zone.Manager) {
	em := common.NewEntityManager()
	common.InitializeCommonComponents(em.World)
	ecshelper.InitializePhysicalComponents(em.World)
	equipment.InitializeEquipmentComponents(em.World)

	proj := coords.WorldProjection{MapWidthZones: 2, MapHeightZones: 2, MapDepthZones: 1, ZoneWidth: 8, ZoneHeight: 8}
	gen := &flatGenerator{}
	zm := zone.NewManager(proj, gen, nil, 1, em, nil, nil)
	zm.SetPlayerZone(proj.ZoneIdx(0, 0, 0))
	for i := 0; i < 20; i++ {
		zm.Tick()
	}
	return em, zm
}

// flatGenerator produces an all-Grass zone (the zero Terrain), so movement tests aren't
// incidentally blocked by generated terrain.
type flatGenerator struct{}

func (g *flatGenerator) Generate(idx coords.ZoneIndex, seed uint32, neighbors zone.EdgeConstraints) zone.ZoneData {
	return zone.ZoneData{Terrain: grid.New[zone.Terrain](8, 8)}
}

func spawnMover(em *common.EntityManager, zm *zone.Manager, pos coords.WorldPosition, speed int) stableid.Id {
	e := em.World.NewEntity()
	e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: pos})
	stats := common.NewStats(0, 0, 0).Set(common.StatSpeed, speed)
	e.AddComponent(common.StatsComponent, &stats)
	e.AddComponent(common.StatModifiersComponent, &common.StatModifiers{})
	e.AddComponent(ecshelper.EnergyComponent, &ecshelper.Energy{Value: 1000})
	e.AddComponent(ecshelper.MovementCapabilitiesComponent, &ecshelper.MovementCapabilities{Flags: ecshelper.Terrestrial})

	id := em.AssignStableID(e)
	if z, ok := zm.ZoneAt(pos); ok {
		local := zm.Projection().WorldToZoneLocal(pos.X, pos.Y)
		z.Entities.InsertPos(local, spatialindex.Id(id))
	}
	return id
}

func energyOf(em *common.EntityManager, id stableid.Id) int32 {
	e := common.FindByStableID(em, id)
	return common.GetComponentType[*ecshelper.Energy](e, ecshelper.EnergyComponent).Value
}

func TestMoveStepsEntityAndConsumesSpeedAdjustedEnergy(t *testing.T) {
	em, zm := newActionsTestManager(t)
	id := spawnMover(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0}, 10)

	if !Move(em, zm, id, coords.WorldPosition{X: 1, Y: 0, Z: 0}) {
		t.Fatalf("Move into open floor should succeed")
	}

	pos := common.GetPosition(common.FindByStableID(em, id))
	if pos.X != 1 || pos.Y != 0 {
		t.Fatalf("position = (%d,%d), want (1,0)", pos.X, pos.Y)
	}
	// base 100 - 2*10 = 80
	if got, want := int32(1000-80), energyOf(em, id); got != want {
		t.Fatalf("energy after move = %d, want %d", want, got)
	}
}

func TestMoveUpdatesSpatialIndexMembership(t *testing.T) {
	em, zm := newActionsTestManager(t)
	id := spawnMover(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0}, 0)

	Move(em, zm, id, coords.WorldPosition{X: 1, Y: 0, Z: 0})

	z, _ := zm.Zone(zm.Projection().ZoneIdx(0, 0, 0))
	oldLocal := zm.Projection().WorldToZoneLocal(0, 0)
	newLocal := zm.Projection().WorldToZoneLocal(1, 0)
	if ids := z.Entities.AtPos(oldLocal); len(ids) != 0 {
		t.Fatalf("old cell still has occupants: %v", ids)
	}
	found := false
	for _, rawID := range z.Entities.AtPos(newLocal) {
		if stableid.Id(rawID) == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("new cell missing mover %d", id)
	}
}

func TestMoveIntoBlockedCellFails(t *testing.T) {
	em, zm := newActionsTestManager(t)
	mover := spawnMover(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0}, 0)

	blocker := em.World.NewEntity()
	blocker.AddComponent(common.PositionComponent, &common.Position{WorldPosition: coords.WorldPosition{X: 1, Y: 0, Z: 0}})
	blocker.AddComponent(ecshelper.ColliderComponent, &ecshelper.Collider{Flags: ecshelper.Wall})
	blockerID := em.AssignStableID(blocker)
	z, _ := zm.Zone(zm.Projection().ZoneIdx(0, 0, 0))
	z.Entities.InsertPos(zm.Projection().WorldToZoneLocal(1, 0), spatialindex.Id(blockerID))

	before := energyOf(em, mover)
	if Move(em, zm, mover, coords.WorldPosition{X: 1, Y: 0, Z: 0}) {
		t.Fatalf("Move into a Wall collider should fail")
	}
	if got := energyOf(em, mover); got != before {
		t.Fatalf("failed move must not consume energy: before=%d after=%d", before, got)
	}
}

func TestMoveIntoUnloadedZoneFails(t *testing.T) {
	em, zm := newActionsTestManager(t)
	mover := spawnMover(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0}, 0)

	if Move(em, zm, mover, coords.WorldPosition{X: 1000, Y: 1000, Z: 0}) {
		t.Fatalf("Move into a zone outside the loaded set should fail")
	}
}

func TestWaitConsumesFixedEnergyRegardlessOfSpeed(t *testing.T) {
	em, zm := newActionsTestManager(t)
	id := spawnMover(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0}, 50)

	Wait(em, id)

	if got, want := energyOf(em, id), int32(1000-100); got != want {
		t.Fatalf("energy after wait = %d, want %d (Wait cost is not speed-adjusted)", got, want)
	}
}
