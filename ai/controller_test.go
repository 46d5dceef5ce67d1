package ai

import (
	"testing"

	"frontiersim/common"
	"frontiersim/coords"
)

func TestBasicAggressivePursuesDistantPlayer(t *testing.T) {
	em, zm, runner := newAiTestRig(t)
	spawnPlayer(em, zm, coords.WorldPosition{X: 5, Y: 0, Z: 0})
	monsterID, monster := spawnMonster(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0}, BasicAggressive)

	runner.Act(monsterID)

	ctl := controllerOf(monster)
	if ctl.State != Pursuing {
		t.Fatalf("state after detecting a distant player = %v, want Pursuing", ctl.State)
	}
	pos := common.GetPosition(monster)
	if pos.X != 1 {
		t.Fatalf("monster.X = %d, want 1 (stepped one tile towards the player)", pos.X)
	}
}

func TestBasicAggressiveFightsAdjacentPlayer(t *testing.T) {
	em, zm, runner := newAiTestRig(t)
	spawnPlayer(em, zm, coords.WorldPosition{X: 1, Y: 0, Z: 0})
	monsterID, monster := spawnMonster(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0}, BasicAggressive)

	runner.Act(monsterID)

	ctl := controllerOf(monster)
	if ctl.State != Fighting {
		t.Fatalf("state with an adjacent player = %v, want Fighting", ctl.State)
	}
	pos := common.GetPosition(monster)
	if pos.X != 0 {
		t.Fatalf("a fighting entity should not move, got X=%d", pos.X)
	}
}

func TestTimidNeverFightsAndFlees(t *testing.T) {
	em, zm, runner := newAiTestRig(t)
	spawnPlayer(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0})
	monsterID, monster := spawnMonster(em, zm, coords.WorldPosition{X: 1, Y: 0, Z: 0}, Timid)

	runner.Act(monsterID)

	ctl := controllerOf(monster)
	if ctl.State != Fleeing {
		t.Fatalf("Timid template state = %v, want Fleeing once a player is detected", ctl.State)
	}
	pos := common.GetPosition(monster)
	if pos.X != 2 {
		t.Fatalf("fleeing monster.X = %d, want 2 (stepped away from the player at X=0)", pos.X)
	}
}

func TestLeashForcesReturningRegardlessOfState(t *testing.T) {
	em, zm, runner := newAiTestRig(t)
	home := coords.WorldPosition{X: 0, Y: 0, Z: 0}
	monsterID, monster := spawnMonster(em, zm, coords.WorldPosition{X: 10, Y: 0, Z: 0}, BasicAggressive)
	ctlBefore := controllerOf(monster)
	ctlBefore.HomePos = home
	ctlBefore.LeashRange = 5

	runner.Act(monsterID)

	ctl := controllerOf(monster)
	if ctl.State != Returning {
		t.Fatalf("state beyond LeashRange = %v, want Returning", ctl.State)
	}
	pos := common.GetPosition(monster)
	if pos.X != 9 {
		t.Fatalf("returning monster.X = %d, want 9 (stepped one tile back towards home)", pos.X)
	}
}

func TestScavengerFleesHealthyTarget(t *testing.T) {
	em, zm, runner := newAiTestRig(t)
	spawnPlayer(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0})
	monsterID, monster := spawnMonster(em, zm, coords.WorldPosition{X: 1, Y: 0, Z: 0}, Scavenger)

	runner.Act(monsterID)

	if controllerOf(monster).State != Fleeing {
		t.Fatalf("Scavenger facing a healthy target should flee, got %v", controllerOf(monster).State)
	}
	if pos := common.GetPosition(monster); pos.X != 2 {
		t.Fatalf("fleeing scavenger.X = %d, want 2", pos.X)
	}
}

func TestScavengerEngagesAlreadyWoundedTarget(t *testing.T) {
	em, zm, runner := newAiTestRig(t)
	_, playerEntity := spawnPlayerWithEntity(em, zm, coords.WorldPosition{X: 0, Y: 0, Z: 0})
	ecshelperHealth(playerEntity).Current = 1 // well under half of Max: 20
	monsterID, monster := spawnMonster(em, zm, coords.WorldPosition{X: 1, Y: 0, Z: 0}, Scavenger)

	runner.Act(monsterID)

	ctl := controllerOf(monster)
	if ctl.State != Fighting {
		t.Fatalf("Scavenger facing an already-wounded adjacent target = %v, want Fighting", ctl.State)
	}
}
