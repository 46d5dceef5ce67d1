package common

import (
	"fmt"

	"github.com/bytearena/ecs"
)

// StatsComponent and StatModifiersComponent are registered by
// InitializeCommonComponents alongside the rest of this package's
// components.
var (
	StatsComponent         *ecs.Component
	StatModifiersComponent *ecs.Component
)

// StatKey names one scalar an entity can have a base value and additive
// modifiers for. The weapon-family proficiency stats map 1:1 onto
// combat.WeaponFamily (spec.md SUPPLEMENTED FEATURES #1).
type StatKey int

const (
	StatStrength StatKey = iota
	StatDexterity
	StatConstitution
	StatSpeed       // reduces Move energy cost
	StatReloadSpeed // not read by any action in this module
	StatDodge
	StatKnockback
	StatRifleSkill
	StatShotgunSkill
	StatPistolSkill
	StatBladeSkill
	StatCudgelSkill
	StatUnarmedSkill
	statKeyCount
)

// Stats holds an entity's raw base values, before any StatModifiers are
// applied. These never change except through deliberate character
// progression; everything situational goes through StatModifiers instead.
type Stats struct {
	Values [statKeyCount]int
}

// NewStats builds a Stats block with the given strength/dexterity/
// constitution and every other stat defaulted to zero.
func NewStats(strength, dexterity, constitution int) Stats {
	var s Stats
	s.Values[StatStrength] = strength
	s.Values[StatDexterity] = dexterity
	s.Values[StatConstitution] = constitution
	return s
}

// Get returns the base value of a stat.
func (s Stats) Get(key StatKey) int {
	return s.Values[key]
}

// Set overwrites the base value of a stat, returning the updated Stats.
func (s Stats) Set(key StatKey, value int) Stats {
	s.Values[key] = value
	return s
}

// ModifierSourceKind discriminates where a StatModifier came from, so it
// can be removed again by matching on source (spec.md §3.6).
type ModifierSourceKind int

const (
	SourceEquipment ModifierSourceKind = iota
	SourceIntrinsic
	SourceCondition
)

// ModifierSource identifies what granted a StatModifier. Exactly one of
// the three fields is meaningful, selected by Kind; this is Go's
// tagged-union idiom for the spec's `Equipment{item_id} | Intrinsic{name}
// | Condition{..}` sum type.
type ModifierSource struct {
	Kind          ModifierSourceKind
	EquipmentItem uint64 // stableid.Id of the granting item, when Kind == SourceEquipment
	IntrinsicName string // when Kind == SourceIntrinsic
	ConditionKind int    // conditions.Kind, when Kind == SourceCondition
}

// EquipmentSource builds a ModifierSource attributing a modifier to an
// equipped item.
func EquipmentSource(itemID uint64) ModifierSource {
	return ModifierSource{Kind: SourceEquipment, EquipmentItem: itemID}
}

// IntrinsicSource builds a ModifierSource attributing a modifier to a
// named intrinsic trait.
func IntrinsicSource(name string) ModifierSource {
	return ModifierSource{Kind: SourceIntrinsic, IntrinsicName: name}
}

// ConditionSource builds a ModifierSource attributing a modifier to an
// active condition.
func ConditionSource(kind int) ModifierSource {
	return ModifierSource{Kind: SourceCondition, ConditionKind: kind}
}

// StatModifier is one additive adjustment to a single stat.
type StatModifier struct {
	Source ModifierSource
	Stat   StatKey
	Amount int
}

// StatModifiers is the component holding every currently-active modifier
// on an entity.
type StatModifiers struct {
	Entries []StatModifier
}

// Add appends a modifier.
func (m *StatModifiers) Add(mod StatModifier) {
	m.Entries = append(m.Entries, mod)
}

// RemoveBySource deletes every modifier attributed to the given source,
// used by Unequip (remove everything from that item) and by condition
// expiry (remove everything from that condition kind).
func (m *StatModifiers) RemoveBySource(source ModifierSource) {
	kept := m.Entries[:0]
	for _, e := range m.Entries {
		if e.Source != source {
			kept = append(kept, e)
		}
	}
	m.Entries = kept
}

// Attributes is the derived stat cache: Stats plus the sum of all active
// StatModifiers, recomputed whenever Stats or StatModifiers change.
// Health is tracked separately (see ecshelper.Health) since it is
// mutated far more often than derived stats are recalculated.
type Attributes struct {
	Total [statKeyCount]int
}

// Recalculate rebuilds Attributes from base Stats plus every active
// StatModifier. Call after equip/unequip and after any condition is
// applied or expires.
func Recalculate(base Stats, mods StatModifiers) Attributes {
	var a Attributes
	a.Total = base.Values
	for _, m := range mods.Entries {
		a.Total[m.Stat] += m.Amount
	}
	return a
}

// Get returns the fully-modified value of a stat.
func (a Attributes) Get(key StatKey) int {
	return a.Total[key]
}

// DisplayString renders a short human-readable summary, matching the
// teacher's existing convention for gameplay diagnostics.
func (a Attributes) DisplayString() string {
	return fmt.Sprintf("STR %d DEX %d CON %d DODGE %d SPD %d",
		a.Get(StatStrength), a.Get(StatDexterity), a.Get(StatConstitution),
		a.Get(StatDodge), a.Get(StatSpeed))
}

// GetAttributes recomputes an entity's Attributes live from its Stats and
// StatModifiers components, defaulting either to its zero value if the
// entity doesn't carry it. Combat and AI always read through this rather
// than caching, since modifiers (conditions especially) change often
// enough that a stale cache would be a correctness bug.
func GetAttributes(entity *ecs.Entity) Attributes {
	var base Stats
	if s := GetComponentType[*Stats](entity, StatsComponent); s != nil {
		base = *s
	}
	var mods StatModifiers
	if m := GetComponentType[*StatModifiers](entity, StatModifiersComponent); m != nil {
		mods = *m
	}
	return Recalculate(base, mods)
}
