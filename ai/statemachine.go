package ai

import (
	"frontiersim/common"
	"frontiersim/conditions"
	"frontiersim/config"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/randgen"
	"frontiersim/sim"
	"frontiersim/stableid"
	"frontiersim/zone"

	"github.com/bytearena/ecs"
)

// Runner drives every AiController-carrying entity's turn. It is injected
// into sim.Simulation as a sim.AITurnFunc, so the sim package never needs
// to import AI decision logic directly.
type Runner struct {
	EM    *common.EntityManager
	Zones *zone.Manager
	RNG   *randgen.Source

	playerTag ecs.Tag
}

// NewRunner builds a Runner. playerTag should select the unique player
// entity (common.PlayerComponent).
func NewRunner(em *common.EntityManager, zones *zone.Manager, rng *randgen.Source) *Runner {
	return &Runner{EM: em, Zones: zones, RNG: rng, playerTag: ecs.BuildTag(common.PlayerComponent)}
}

// Act implements sim.AITurnFunc: it is called once per scheduler pick of
// a non-player entity, and must itself consume that entity's energy.
func (r *Runner) Act(actingID stableid.Id) {
	entity := common.FindByStableID(r.EM, actingID)
	if entity == nil {
		return
	}

	if kind, ok := activeOverride(entity); ok {
		r.actOverride(entity, actingID, kind)
		return
	}

	ctl := controllerOf(entity)
	if ctl == nil {
		sim.Wait(r.EM, actingID)
		return
	}
	pos := common.GetPosition(entity)
	if pos == nil {
		sim.Wait(r.EM, actingID)
		return
	}

	here := pos.WorldPosition
	if ctl.State != Returning && here.ChebyshevDistance2D(ctl.HomePos) > ctl.LeashRange {
		ctl.State = Returning
		ctl.Target = stableid.NoId
		active := r.activeConditions(entity)
		active.Apply(conditions.New(conditions.ReturningHome, actingID))
	}

	switch ctl.State {
	case Returning:
		r.actReturning(entity, actingID, ctl, here)
	case Fighting:
		r.actFighting(entity, actingID, ctl, here)
	case Fleeing:
		r.actFleeing(entity, actingID, ctl, here)
	case Pursuing:
		r.actPursuing(entity, actingID, ctl, here)
	default:
		r.actIdleOrWander(entity, actingID, ctl, here)
	}
}

func (r *Runner) activeConditions(entity *ecs.Entity) *conditions.ActiveConditions {
	active := common.GetComponentType[*conditions.ActiveConditions](entity, conditions.ActiveConditionsComponent)
	if active == nil {
		active = &conditions.ActiveConditions{}
		entity.AddComponent(conditions.ActiveConditionsComponent, active)
	}
	return active
}

// actOverride handles a forced action from a condition taking precedence
// over the state machine (SUPPLEMENTED FEATURES #3).
func (r *Runner) actOverride(entity *ecs.Entity, actingID stableid.Id, kind conditions.Kind) {
	switch kind {
	case conditions.Stunned:
		sim.Wait(r.EM, actingID)
	case conditions.Feared:
		active := common.GetComponentType[*conditions.ActiveConditions](entity, conditions.ActiveConditionsComponent)
		cond, _ := active.Find(conditions.Feared)
		r.fleeFrom(entity, actingID, cond.Source)
	case conditions.Taunted:
		active := common.GetComponentType[*conditions.ActiveConditions](entity, conditions.ActiveConditionsComponent)
		cond, _ := active.Find(conditions.Taunted)
		r.engage(entity, actingID, cond.Source)
	case conditions.Confused:
		r.stepRandomDirection(entity, actingID)
	default:
		sim.Wait(r.EM, actingID)
	}
}

// player finds the unique player entity and its stable id, if any.
func (r *Runner) player() (*ecs.Entity, stableid.Id) {
	for _, result := range r.EM.World.Query(r.playerTag) {
		return result.Entity, common.StableIDOf(result.Entity)
	}
	return nil, stableid.NoId
}

// actIdleOrWander looks for the player within detection range; Ambush
// stays put (spec.md §4.6 step 3) until something closes to melee range,
// everyone else wanders within WanderRange of home absent a detection.
func (r *Runner) actIdleOrWander(entity *ecs.Entity, actingID stableid.Id, ctl *Controller, here coords.WorldPosition) {
	target, targetID := r.player()
	if target != nil {
		targetPos := common.GetPosition(target)
		detectionRange := ctl.DetectionRange
		if ctl.Template == Ambush {
			detectionRange = 1
		}
		if targetPos != nil && here.ChebyshevDistance2D(targetPos.WorldPosition) <= detectionRange {
			ctl.State = Wandering
			r.engage(entity, actingID, targetID)
			return
		}
	}

	if ctl.Template == Ambush {
		sim.Wait(r.EM, actingID)
		return
	}

	ctl.State = Wandering
	if here.ChebyshevDistance2D(ctl.HomePos) >= ctl.WanderRange {
		r.stepToward(entity, actingID, ctl.HomePos)
		return
	}
	r.stepRandomDirection(entity, actingID)
}

// engage routes a newly detected target into Fighting (if adjacent),
// Pursuing, or — for Timid/Scavenger templates that won't fight this
// target — Fleeing.
func (r *Runner) engage(entity *ecs.Entity, actingID stableid.Id, targetID stableid.Id) {
	ctl := controllerOf(entity)
	target := common.FindByStableID(r.EM, targetID)
	if target == nil {
		ctl.State = Wandering
		ctl.Target = stableid.NoId
		sim.Wait(r.EM, actingID)
		return
	}

	if !r.willFight(entity, ctl, target) {
		ctl.State = Fleeing
		ctl.Target = targetID
		r.actFleeing(entity, actingID, ctl, *positionOf(entity))
		return
	}

	ctl.Target = targetID
	here := positionOf(entity)
	targetPos := positionOf(target)
	if here.ChebyshevDistance2D(*targetPos) <= 1 {
		ctl.State = Fighting
		r.actFighting(entity, actingID, ctl, *here)
		return
	}
	ctl.State = Pursuing
	r.actPursuing(entity, actingID, ctl, *here)
}

// willFight applies each template's engagement policy (spec.md §4.6 step
// 3): Timid never fights; Scavenger only fights targets already below
// half health (it scavenges weakened prey rather than hunting); the
// others always engage once detected.
func (r *Runner) willFight(entity *ecs.Entity, ctl *Controller, target *ecs.Entity) bool {
	switch ctl.Template {
	case Timid:
		return false
	case Scavenger:
		health := common.GetComponentType[*ecshelper.Health](target, ecshelper.HealthComponent)
		return health != nil && health.Max > 0 && health.Current*2 <= health.Max
	default:
		return true
	}
}

func (r *Runner) actPursuing(entity *ecs.Entity, actingID stableid.Id, ctl *Controller, here coords.WorldPosition) {
	target := common.FindByStableID(r.EM, ctl.Target)
	if target == nil {
		ctl.State = Wandering
		ctl.Target = stableid.NoId
		sim.Wait(r.EM, actingID)
		return
	}
	targetPos := positionOf(target)
	if here.ChebyshevDistance2D(*targetPos) <= 1 {
		ctl.State = Fighting
		r.actFighting(entity, actingID, ctl, here)
		return
	}
	r.stepToward(entity, actingID, *targetPos)
}

func (r *Runner) actFighting(entity *ecs.Entity, actingID stableid.Id, ctl *Controller, here coords.WorldPosition) {
	target := common.FindByStableID(r.EM, ctl.Target)
	if target == nil {
		ctl.State = Wandering
		ctl.Target = stableid.NoId
		sim.Wait(r.EM, actingID)
		return
	}
	targetPos := positionOf(target)
	if here.ChebyshevDistance2D(*targetPos) > 1 {
		ctl.State = Pursuing
		r.actPursuing(entity, actingID, ctl, here)
		return
	}

	if ctl.Template == Scavenger && !r.willFight(entity, ctl, target) {
		ctl.State = Fleeing
		r.actFleeing(entity, actingID, ctl, here)
		return
	}

	sim.Attack(r.EM, r.Zones, r.RNG, actingID, ctl.Target, nil, false)

	health := common.GetComponentType[*ecshelper.Health](target, ecshelper.HealthComponent)
	if health != nil && health.Current <= 0 {
		ctl.State = Wandering
		ctl.Target = stableid.NoId
	}
}

func (r *Runner) actFleeing(entity *ecs.Entity, actingID stableid.Id, ctl *Controller, here coords.WorldPosition) {
	if ctl.Target != stableid.NoId {
		r.fleeFrom(entity, actingID, ctl.Target)
		if safe := r.fledFarEnough(here, ctl); safe {
			ctl.State = Wandering
			ctl.Target = stableid.NoId
		}
		return
	}
	ctl.State = Wandering
	sim.Wait(r.EM, actingID)
}

func (r *Runner) fledFarEnough(here coords.WorldPosition, ctl *Controller) bool {
	threat := common.FindByStableID(r.EM, ctl.Target)
	if threat == nil {
		return true
	}
	threatPos := positionOf(threat)
	safeDistance := config.ScavengerSafeDistance
	if ctl.Template != Scavenger {
		safeDistance = ctl.DetectionRange
	}
	return here.ChebyshevDistance2D(*threatPos) > safeDistance
}

func (r *Runner) fleeFrom(entity *ecs.Entity, actingID stableid.Id, threatID stableid.Id) {
	threat := common.FindByStableID(r.EM, threatID)
	here := positionOf(entity)
	if threat == nil {
		sim.Wait(r.EM, actingID)
		return
	}
	threatPos := positionOf(threat)
	// Direction from the threat towards the fleeing entity points away
	// from the threat; stepping further along it increases distance.
	dir := coords.DirectionTowards(*threatPos, *here)
	next := here.Step(dir)
	if !sim.Move(r.EM, r.Zones, actingID, next) {
		sim.Wait(r.EM, actingID)
	}
}

// actReturning walks home one step per turn, re-applying ReturningHome on
// every step. On arrival the entity goes back to Idle and ReturningHome is
// removed at once: no recovery period is held after arrival, and the
// condition itself carries no healing effect.
func (r *Runner) actReturning(entity *ecs.Entity, actingID stableid.Id, ctl *Controller, here coords.WorldPosition) {
	if here == ctl.HomePos {
		ctl.State = Idle
		r.activeConditions(entity).Remove(conditions.ReturningHome)
		sim.Wait(r.EM, actingID)
		return
	}
	active := r.activeConditions(entity)
	active.Apply(conditions.New(conditions.ReturningHome, actingID))
	r.stepToward(entity, actingID, ctl.HomePos)
}

func (r *Runner) stepToward(entity *ecs.Entity, actingID stableid.Id, dest coords.WorldPosition) {
	here := positionOf(entity)
	dir := coords.DirectionTowards(*here, dest)
	next := here.Step(dir)
	if !sim.Move(r.EM, r.Zones, actingID, next) {
		sim.Wait(r.EM, actingID)
	}
}

func (r *Runner) stepRandomDirection(entity *ecs.Entity, actingID stableid.Id) {
	here := positionOf(entity)
	dirs := []coords.Direction{coords.North, coords.South, coords.East, coords.West}
	dir := dirs[r.RNG.Intn(len(dirs))]
	next := here.Step(dir)
	if !sim.Move(r.EM, r.Zones, actingID, next) {
		sim.Wait(r.EM, actingID)
	}
}

func positionOf(entity *ecs.Entity) *coords.WorldPosition {
	pos := common.GetPosition(entity)
	if pos == nil {
		return &coords.WorldPosition{}
	}
	return &pos.WorldPosition
}
