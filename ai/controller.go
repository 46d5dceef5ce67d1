// Package ai implements the per-entity AI controller state machine
// (spec.md §4.6): detection, pursuit, fighting, fleeing, and leashed
// return-home behavior, driven off four behavior templates. It is
// grounded on the teacher's behavior package's shape — a per-tick system
// that queries a tagged set of entities and drives one decision each
// (behavior/monstersystem.go's MonsterSystems loop) and a component that
// records a creature's behavior kind at spawn time
// (behavior/creaturebehavior.go's BehaviorSelector) — generalized here
// into an explicit state machine rather than a fixed attack-style pick,
// since the spec calls for stateful pursuit/leash/flee behavior the
// teacher's squad-oriented original never modeled per-entity.
package ai

import (
	"frontiersim/common"
	"frontiersim/config"
	"frontiersim/coords"
	"frontiersim/stableid"

	"github.com/bytearena/ecs"
)

// State is one node of the AI state machine (spec.md §4.6 step 2):
// Idle -> Wandering -> Pursuing -> Fighting -> (Pursuing <-> Fleeing) ->
// Returning -> Idle.
type State int

const (
	Idle State = iota
	Wandering
	Pursuing
	Fighting
	Fleeing
	Returning
)

// Template names one of the four behavior profiles spec.md §4.6 step 3
// lists, each differing in when it engages, flees, or loots.
type Template int

const (
	BasicAggressive Template = iota
	Timid
	Scavenger
	Ambush
)

// Controller is the component driving one entity's AI (spec.md §4.6
// "AiController"). HomePos anchors leash/return-home; Target is the
// stable id currently being pursued or fought, stableid.NoId when none.
type Controller struct {
	State          State
	Template       Template
	HomePos        coords.WorldPosition
	Target         stableid.Id
	DetectionRange int
	WanderRange    int
	LeashRange     int
}

var ControllerComponent *ecs.Component

// InitializeAIComponents registers the AiController component.
func InitializeAIComponents(manager *ecs.Manager) {
	ControllerComponent = manager.NewComponent()
}

// NewController builds a Controller for template t, anchored at home,
// with every range defaulted from config (spec.md §4.6 step 3 defaults,
// SUPPLEMENTED FEATURES #4).
func NewController(t Template, home coords.WorldPosition) *Controller {
	c := &Controller{
		Template:       t,
		State:          Idle,
		HomePos:        home,
		DetectionRange: config.DefaultDetectionRange,
		WanderRange:    config.DefaultWanderRange,
		LeashRange:     config.DefaultLeashRange,
	}
	if t == Scavenger {
		c.DetectionRange = config.ScavengerSafeDistance + 1
	}
	return c
}

func controllerOf(e *ecs.Entity) *Controller {
	return common.GetComponentType[*Controller](e, ControllerComponent)
}
