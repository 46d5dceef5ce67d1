// Package sim implements the energy-credit Scheduler (spec.md §4.3), the
// Move/Wait action resolver, and the Simulation that wires the rest of
// the core's packages (zone manager, AI controller, RNG, clock) into a
// single driveable step function (spec.md §5). FOV is driven by the
// caller (cmd/simcli), not by this package.
package sim

import (
	"frontiersim/common"
	"frontiersim/ecshelper"
	"frontiersim/stableid"

	"github.com/bytearena/ecs"
)

// Scheduler picks the next acting entity from every entity carrying an
// Energy component, ties broken by ascending stable id (spec.md §4.3
// step 1).
type Scheduler struct {
	em    *common.EntityManager
	clock *common.Clock
	tag   ecs.Tag
}

// NewScheduler builds a Scheduler over em's entities, advancing clock.
func NewScheduler(em *common.EntityManager, clock *common.Clock) *Scheduler {
	return &Scheduler{em: em, clock: clock, tag: ecs.BuildTag(ecshelper.EnergyComponent)}
}

// pick finds the highest-Energy entity, ties broken by ascending stable
// id. Returns ok=false if no entity carries both Energy and a StableId.
func (s *Scheduler) pick() (entity *ecs.Entity, id stableid.Id, energy int32, ok bool) {
	first := true
	for _, result := range s.em.World.Query(s.tag) {
		e := result.Entity
		eid := common.StableIDOf(e)
		if eid == stableid.NoId {
			continue
		}
		val := common.GetComponentType[*ecshelper.Energy](e, ecshelper.EnergyComponent)
		if val == nil {
			continue
		}
		if first || val.Value > energy || (val.Value == energy && eid < id) {
			entity, id, energy, ok = e, eid, val.Value, true
			first = false
		}
	}
	return
}

// Step runs one scheduling step (spec.md §4.3 steps 1-2):
//
//   - If no entity can act at all, returns (NoId, false, false).
//   - If the best entity's Energy is negative, nobody can act this step:
//     every entity's Energy is credited by the deficit, clock.tick advances
//     by the same amount, and (NoId, true, true) is returned — "advanced"
//     reports a no-acting step happened, so the caller knows to resolve
//     tick-dependent work (conditions, fuses) before picking again.
//   - Otherwise the picked entity becomes the current acting entity and
//     (id, false, true) is returned; TickDelta is cleared to zero, since
//     it is only ever nonzero during a no-acting step.
func (s *Scheduler) Step() (acting stableid.Id, advanced bool, ok bool) {
	_, id, energy, found := s.pick()
	if !found {
		return stableid.NoId, false, false
	}
	if energy < 0 {
		delta := uint32(-energy)
		for _, result := range s.em.World.Query(s.tag) {
			if e := common.GetComponentType[*ecshelper.Energy](result.Entity, ecshelper.EnergyComponent); e != nil {
				e.Add(int32(delta))
			}
		}
		s.clock.Advance(delta)
		return stableid.NoId, true, true
	}
	s.clock.ClearDelta()
	return id, false, true
}
