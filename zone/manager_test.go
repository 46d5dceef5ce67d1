package zone

import (
	"testing"

	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/grid"
)

type stubGenerator struct{ calls int }

func (g *stubGenerator) Generate(idx coords.ZoneIndex, seed uint32, neighbors EdgeConstraints) ZoneData {
	g.calls++
	return ZoneData{Terrain: grid.New[Terrain](4, 4)}
}

func newTestManager(t *testing.T) (*Manager, *stubGenerator) {
	em := common.NewEntityManager()
	common.InitializeCommonComponents(em.World)
	ecshelper.InitializePhysicalComponents(em.World)
	proj := coords.WorldProjection{MapWidthZones: 3, MapHeightZones: 3, MapDepthZones: 1, ZoneWidth: 4, ZoneHeight: 4}
	gen := &stubGenerator{}
	return NewManager(proj, gen, nil, 1, em, nil, nil), gen
}

func TestTickLoadsPlayerZoneAndNeighbors(t *testing.T) {
	m, _ := newTestManager(t)
	center := m.proj.ZoneIdx(1, 1, 0)
	m.SetPlayerZone(center)

	for i := 0; i < 20; i++ {
		m.Tick()
	}

	if _, ok := m.Zone(center); !ok {
		t.Fatalf("player's own zone should be loaded")
	}
	for _, nb := range m.proj.PlaneNeighbors8(m.proj.ZoneXYZ(center)) {
		idx := m.proj.ZoneIdx(nb.X, nb.Y, nb.Z)
		if _, ok := m.Zone(idx); !ok {
			t.Fatalf("neighbor zone %d should be loaded", idx)
		}
	}
	z, _ := m.Zone(center)
	if z.Status != Active {
		t.Fatalf("player zone status = %v, want Active", z.Status)
	}
	nb := m.proj.PlaneNeighbors8(m.proj.ZoneXYZ(center))[0]
	nbIdx := m.proj.ZoneIdx(nb.X, nb.Y, nb.Z)
	nbZone, _ := m.Zone(nbIdx)
	if nbZone.Status != Dormant {
		t.Fatalf("neighbor zone status = %v, want Dormant", nbZone.Status)
	}
}

func TestTickProcessesAtMostOneLoadAndUnloadPerCall(t *testing.T) {
	m, _ := newTestManager(t)
	m.SetPlayerZone(m.proj.ZoneIdx(1, 1, 0))
	m.Tick()
	if len(m.loaded) != 1 {
		t.Fatalf("loaded count after one Tick = %d, want 1 (one load per call)", len(m.loaded))
	}
}

func TestMovingPlayerUnloadsStaleZones(t *testing.T) {
	m, _ := newTestManager(t)
	m.SetPlayerZone(m.proj.ZoneIdx(0, 0, 0))
	for i := 0; i < 20; i++ {
		m.Tick()
	}
	if _, ok := m.Zone(m.proj.ZoneIdx(0, 0, 0)); !ok {
		t.Fatalf("initial zone should have loaded")
	}

	far := m.proj.ZoneIdx(2, 2, 0)
	m.SetPlayerZone(far)
	for i := 0; i < 20; i++ {
		m.Tick()
	}

	if _, ok := m.Zone(m.proj.ZoneIdx(0, 0, 0)); ok {
		t.Fatalf("zone (0,0,0) should have been unloaded once out of range")
	}
	if _, ok := m.Zone(far); !ok {
		t.Fatalf("new player zone should be loaded")
	}
}
