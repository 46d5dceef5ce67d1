// Package conditions implements the timed status-effect list every entity
// can carry (spec.md §3.6 ActiveConditions[]), and the condition
// catalogue recovered from the original prototype's
// src/domain/components/conditions.rs (SPEC_FULL.md §12 item 2).
package conditions

import (
	"frontiersim/stableid"

	"github.com/bytearena/ecs"
)

// ActiveConditionsComponent backs the ActiveConditions component below.
var ActiveConditionsComponent *ecs.Component

// InitializeConditionComponents registers the component this package owns.
func InitializeConditionComponents(manager *ecs.Manager) {
	ActiveConditionsComponent = manager.NewComponent()
}

// Kind is a closed enumeration of the status effects the simulation
// supports.
type Kind int

const (
	Poisoned Kind = iota
	Bleeding
	Burning
	Feared
	Taunted
	Confused
	Stunned
	ReturningHome
)

// BaseDuration is the default tick duration applied when a condition is
// created via New, absent a caller override.
func (k Kind) BaseDuration() int {
	switch k {
	case Poisoned:
		return 1000
	case Bleeding:
		return 800
	case Burning:
		return 600
	case Feared:
		return 600
	case Taunted:
		return 400
	case Confused:
		return 500
	default:
		return 0
	}
}

// CanStack reports whether multiple applications of this kind accumulate
// intensity (only Bleeding does, per the original prototype) rather than
// simply refreshing duration.
func (k Kind) CanStack() bool {
	return k == Bleeding
}

// Condition is one timed status effect instance.
type Condition struct {
	Kind              Kind
	DurationRemaining int
	Intensity         int
	Source            stableid.Id
}

// New creates a condition of kind k from source, with its catalogue base
// duration and intensity 1.
func New(k Kind, source stableid.Id) Condition {
	return Condition{Kind: k, DurationRemaining: k.BaseDuration(), Intensity: 1, Source: source}
}

// ActiveConditions is the component listing every condition currently
// affecting an entity.
type ActiveConditions struct {
	Conditions []Condition
}

// Apply adds cond to the list. If an existing condition of the same kind
// is present: stacking kinds add intensity and refresh duration to the
// max of the two; non-stacking kinds are simply refreshed (duration reset
// to the new value, intensity left at 1).
func (ac *ActiveConditions) Apply(cond Condition) {
	for i := range ac.Conditions {
		existing := &ac.Conditions[i]
		if existing.Kind != cond.Kind {
			continue
		}
		if cond.Kind.CanStack() {
			existing.Intensity += cond.Intensity
			if cond.DurationRemaining > existing.DurationRemaining {
				existing.DurationRemaining = cond.DurationRemaining
			}
			existing.Source = cond.Source
			return
		}
		*existing = cond
		return
	}
	ac.Conditions = append(ac.Conditions, cond)
}

// Has reports whether a condition of kind k is currently active.
func (ac *ActiveConditions) Has(k Kind) bool {
	_, ok := ac.Find(k)
	return ok
}

// Find returns the active condition of kind k, if any.
func (ac *ActiveConditions) Find(k Kind) (Condition, bool) {
	for _, c := range ac.Conditions {
		if c.Kind == k {
			return c, true
		}
	}
	return Condition{}, false
}

// Remove deletes every active condition of kind k.
func (ac *ActiveConditions) Remove(k Kind) {
	kept := ac.Conditions[:0]
	for _, c := range ac.Conditions {
		if c.Kind != k {
			kept = append(kept, c)
		}
	}
	ac.Conditions = kept
}

// Tick advances every active condition's remaining duration down by
// delta ticks, dropping any that expire, and returns the kinds that
// expired this call (so callers can clean up associated stat modifiers).
func (ac *ActiveConditions) Tick(delta int) []Kind {
	var expired []Kind
	kept := ac.Conditions[:0]
	for _, c := range ac.Conditions {
		c.DurationRemaining -= delta
		if c.DurationRemaining <= 0 {
			expired = append(expired, c.Kind)
			continue
		}
		kept = append(kept, c)
	}
	ac.Conditions = kept
	return expired
}
