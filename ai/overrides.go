package ai

import (
	"frontiersim/common"
	"frontiersim/conditions"

	"github.com/bytearena/ecs"
)

// overridePriority is the fixed condition -> forced-action precedence
// order (SUPPLEMENTED FEATURES #3, from original_source's condition
// handling): a Stunned entity never acts at all regardless of any other
// active condition, a Feared one flees even while Taunted, and so on.
// Expressed as an explicit ordered slice rather than an if-chain so the
// precedence is visible in one place.
var overridePriority = []conditions.Kind{
	conditions.Stunned,
	conditions.Feared,
	conditions.Taunted,
	conditions.Confused,
}

// activeOverride returns the highest-priority overriding condition active
// on entity, and true if one applies. Callers must skip normal state
// machine evaluation when ok is true.
func activeOverride(entity *ecs.Entity) (conditions.Kind, bool) {
	active := common.GetComponentType[*conditions.ActiveConditions](entity, conditions.ActiveConditionsComponent)
	if active == nil {
		return 0, false
	}
	for _, kind := range overridePriority {
		if active.Has(kind) {
			return kind, true
		}
	}
	return 0, false
}
