package sim

import (
	"frontiersim/common"
	"frontiersim/coords"
	"frontiersim/randgen"
	"frontiersim/stableid"
	"frontiersim/zone"

	"go.uber.org/zap"
)

// Simulation wires the entity store, zone manager, scheduler, and RNG into
// the single driveable frame loop spec.md §5 describes: single-threaded,
// no suspension mid-tick, synchronous actions.
type Simulation struct {
	EM    *common.EntityManager
	Zones *zone.Manager
	Clock *common.Clock
	RNG   *randgen.Source
	Log   *zap.SugaredLogger

	sched    *Scheduler
	playerID stableid.Id
	aiTurn   AITurnFunc
}

// NewSimulation builds a Simulation around already-constructed resources.
// aiTurn is invoked for every non-player entity the scheduler selects; the
// caller supplies it (normally backed by the AI controller) so this
// package never needs to import AI decision logic directly.
func NewSimulation(em *common.EntityManager, zones *zone.Manager, rng *randgen.Source, log *zap.SugaredLogger, playerID stableid.Id, aiTurn AITurnFunc) *Simulation {
	clock := &common.Clock{}
	if aiTurn == nil {
		aiTurn = func(stableid.Id) {}
	}
	return &Simulation{
		EM:       em,
		Zones:    zones,
		Clock:    clock,
		RNG:      rng,
		Log:      log,
		sched:    NewScheduler(em, clock),
		playerID: playerID,
		aiTurn:   aiTurn,
	}
}

// PlayerID returns the stable id driving this simulation's player entity.
func (s *Simulation) PlayerID() stableid.Id {
	return s.playerID
}

// RunUntilInput advances the simulation (zone streaming, then scheduler
// steps and AI turns) until the player becomes the current acting entity
// or the iteration cap trips (spec.md §5 "Suspension points"). hitCap
// signals the latter so callers can surface a diagnostic rather than
// silently stalling.
func (s *Simulation) RunUntilInput() (hitCap bool) {
	s.Zones.Tick()
	_, hitCap = s.sched.RunUntilPlayerTurn(s.playerID, func(id stableid.Id) {
		s.aiTurn(id)
		s.Zones.Tick()
	})
	if hitCap && s.Log != nil {
		s.Log.Warnw("scheduler iteration cap reached without a player turn", "playerID", s.playerID)
	}
	return hitCap
}

// SubmitPlayerMove performs the player's Move action, then runs the
// simulation forward to the next input point.
func (s *Simulation) SubmitPlayerMove(newPos coords.WorldPosition) (moved bool, hitCap bool) {
	moved = Move(s.EM, s.Zones, s.playerID, newPos)
	if !moved {
		return false, false
	}
	return true, s.RunUntilInput()
}

// SubmitPlayerWait performs the player's Wait action, then runs the
// simulation forward to the next input point.
func (s *Simulation) SubmitPlayerWait() (hitCap bool) {
	Wait(s.EM, s.playerID)
	return s.RunUntilInput()
}
