// Package savesystem implements save/load (spec.md §4.8): per-zone
// ZoneSaveData records and a per-slot GameSaveData record, written as
// indented JSON under saves/<slot>/ (spec.md §6.3 — SPEC_FULL.md §1 scopes
// the literal on-disk byte format as an external-collaborator concern, so
// this keeps the teacher's encoding/json choice rather than inventing an
// RON-equivalent library dependency; only the logical records and
// directory layout are spec-mandated). It is grounded on the teacher's
// savesystem.go chunk-registry shape (SaveEnvelope, checksum, atomic
// write) generalized from one whole-game blob into per-zone/per-slot
// records, and reuses stableid.RemapTable in place of the teacher's
// idmap.go EntityIDMap.
package savesystem

import (
	"encoding/json"
	"fmt"

	"frontiersim/ai"
	"frontiersim/combat"
	"frontiersim/common"
	"frontiersim/conditions"
	"frontiersim/ecshelper"
	"frontiersim/equipment"

	"github.com/bytearena/ecs"
)

// componentCodec knows how to check for, encode, and decode one component
// type on an entity. The registry below is the generic replacement for
// the teacher's per-subsystem SaveChunk interface: instead of one chunk
// per domain owning its own (de)serialization, every component type
// registers a narrow codec, and SerializedEntity is just the list of
// codecs whose Has returned true.
type componentCodec struct {
	name   string
	has    func(e *ecs.Entity) bool
	encode func(e *ecs.Entity) (json.RawMessage, error)
	decode func(e *ecs.Entity, raw json.RawMessage) error
}

// codecFor builds a componentCodec for a pointer-stored component type T
// (e.g. *common.Name), using blank to allocate a fresh zero value to
// decode into.
func codecFor[T any](name string, comp *ecs.Component, blank func() T) componentCodec {
	return componentCodec{
		name: name,
		has: func(e *ecs.Entity) bool {
			_, ok := e.GetComponentData(comp)
			return ok
		},
		encode: func(e *ecs.Entity) (json.RawMessage, error) {
			v := common.GetComponentType[T](e, comp)
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", name, err)
			}
			return raw, nil
		},
		decode: func(e *ecs.Entity, raw json.RawMessage) error {
			v := blank()
			if err := json.Unmarshal(raw, v); err != nil {
				return fmt.Errorf("decoding %s: %w", name, err)
			}
			e.AddComponent(comp, v)
			return nil
		},
	}
}

// serializableComponents lists every component kind eligible to appear in
// a SerializedEntity's component bag (spec.md §4.8 "SerializedEntity =
// (component_name, serialized_bytes) pairs restricted to serializable
// components"). Position and the stable id itself are carried as
// dedicated SerializedEntity fields rather than entries here, since every
// entity has exactly one of each and callers (the spatial index rebuild,
// the id registry) need them before the rest of the bag is applied.
var serializableComponents = []componentCodec{
	codecFor("Name", common.NameComponent, func() *common.Name { return &common.Name{} }),
	codecFor("Vision", common.VisionComponent, func() *common.Vision { return &common.Vision{} }),
	codecFor("Player", common.PlayerComponent, func() *common.Player { return &common.Player{} }),
	codecFor("Stats", common.StatsComponent, func() *common.Stats { return &common.Stats{} }),
	codecFor("StatModifiers", common.StatModifiersComponent, func() *common.StatModifiers { return &common.StatModifiers{} }),
	codecFor("Collider", ecshelper.ColliderComponent, func() *ecshelper.Collider { return &ecshelper.Collider{} }),
	codecFor("MovementCapabilities", ecshelper.MovementCapabilitiesComponent, func() *ecshelper.MovementCapabilities { return &ecshelper.MovementCapabilities{} }),
	codecFor("Energy", ecshelper.EnergyComponent, func() *ecshelper.Energy { return &ecshelper.Energy{} }),
	codecFor("Health", ecshelper.HealthComponent, func() *ecshelper.Health { return &ecshelper.Health{} }),
	codecFor("Destructible", ecshelper.DestructibleComponent, func() *ecshelper.Destructible { return &ecshelper.Destructible{} }),
	codecFor("ActiveConditions", conditions.ActiveConditionsComponent, func() *conditions.ActiveConditions { return &conditions.ActiveConditions{} }),
	codecFor("Controller", ai.ControllerComponent, func() *ai.Controller { return &ai.Controller{} }),
	codecFor("Item", equipment.ItemComponent, func() *equipment.Item { return &equipment.Item{} }),
	codecFor("InInventory", equipment.InInventoryComponent, func() *equipment.InInventory { return &equipment.InInventory{} }),
	codecFor("Inventory", equipment.InventoryComponent, func() *equipment.Inventory { return &equipment.Inventory{} }),
	codecFor("EquipmentSlots", equipment.EquipmentSlotsComponent, func() *equipment.EquipmentSlots { return &equipment.EquipmentSlots{} }),
	codecFor("Equippable", equipment.EquippableComponent, func() *equipment.Equippable { return &equipment.Equippable{} }),
	codecFor("Equipped", equipment.EquippedComponent, func() *equipment.Equipped { return &equipment.Equipped{} }),
	codecFor("Weapon", combat.WeaponComponent, func() *combat.Weapon { return &combat.Weapon{} }),
}

// encodeComponents builds the component bag for one entity: every
// registered codec whose component is present, in registration order so
// output is deterministic.
func encodeComponents(e *ecs.Entity) ([]SerializedComponent, error) {
	var out []SerializedComponent
	for _, c := range serializableComponents {
		if !c.has(e) {
			continue
		}
		raw, err := c.encode(e)
		if err != nil {
			return nil, err
		}
		out = append(out, SerializedComponent{Name: c.name, Data: raw})
	}
	return out, nil
}

// decodeComponents applies a previously encoded component bag onto a
// freshly created entity. Unknown component names are skipped rather than
// treated as an error, so a save written by a future version that added a
// component type can still be partially loaded (spec.md §7 "missing
// reference... treated as a local no-op", applied here to forward save
// compatibility).
func decodeComponents(e *ecs.Entity, comps []SerializedComponent) error {
	for _, sc := range comps {
		codec, ok := codecByName(sc.Name)
		if !ok {
			continue
		}
		if err := codec.decode(e, sc.Data); err != nil {
			return err
		}
	}
	return nil
}

func codecByName(name string) (componentCodec, bool) {
	for _, c := range serializableComponents {
		if c.name == name {
			return c, true
		}
	}
	return componentCodec{}, false
}
