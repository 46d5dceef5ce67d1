// Package equipment implements the item-location invariant (spec.md §3.6):
// an item entity lives in exactly one place, either the world (has a
// Position, tracked by that zone's SpatialIndex) or someone's Inventory
// (has InInventory, no Position). Pick-up, Drop, Equip, and Unequip are
// the only operations allowed to move an item between the two.
package equipment

import (
	"frontiersim/common"
	"frontiersim/stableid"

	"github.com/bytearena/ecs"
)

var (
	ItemComponent           *ecs.Component
	InInventoryComponent    *ecs.Component
	InventoryComponent      *ecs.Component
	EquipmentSlotsComponent *ecs.Component
	EquippableComponent     *ecs.Component
	EquippedComponent       *ecs.Component
)

// Item marks an entity as a pickup-able object and carries its carry
// weight (spec.md §3.6 `Item{weight}`).
type Item struct {
	Weight float64
}

// InInventory marks an item entity as currently held rather than placed in
// the world, naming the stable id of its owner (spec.md §3.6
// `InInventory{owner_id}`).
type InInventory struct {
	Owner stableid.Id
}

// Inventory is the list of item entities an entity is carrying, stored as
// stable ids so the list survives save/load remapping — adapted from the
// teacher's entities-as-items idiom (Inventory.InventoryContent).
type Inventory struct {
	Items []stableid.Id
}

// Contains reports whether itemID is held in this inventory.
func (inv Inventory) Contains(itemID stableid.Id) bool {
	for _, id := range inv.Items {
		if id == itemID {
			return true
		}
	}
	return false
}

func (inv *Inventory) remove(itemID stableid.Id) {
	kept := inv.Items[:0]
	for _, id := range inv.Items {
		if id != itemID {
			kept = append(kept, id)
		}
	}
	inv.Items = kept
}

// SlotKind names one equipment slot on EquipmentSlots.
type SlotKind int

const (
	SlotMainHand SlotKind = iota
	SlotArmor
)

// EquipmentSlots is the owner-side record of what is currently equipped in
// each slot (spec.md §3.6 `EquipmentSlots`).
type EquipmentSlots struct {
	Slots map[SlotKind]stableid.Id
}

// NewEquipmentSlots builds an empty EquipmentSlots.
func NewEquipmentSlots() EquipmentSlots {
	return EquipmentSlots{Slots: make(map[SlotKind]stableid.Id)}
}

// Equipped returns the stable id of whatever currently occupies slot, or
// stableid.NoId if empty.
func (s EquipmentSlots) Equipped(slot SlotKind) stableid.Id {
	if s.Slots == nil {
		return stableid.NoId
	}
	return s.Slots[slot]
}

// ModGrant is one stat bonus an equipped item contributes, turned into a
// common.StatModifier at equip time once the item's stable id is known.
type ModGrant struct {
	Stat   common.StatKey
	Amount int
}

// Equippable marks an item entity as wearable/wieldable, naming the slot
// it occupies and the stat bonuses it grants while equipped (spec.md §3.6
// `Equippable`).
type Equippable struct {
	Slot      SlotKind
	Modifiers []ModGrant
}

// Equipped is an item-side marker recording which owner and slot it is
// currently equipped to, so Drop can refuse (an equipped item must be
// unequipped first) and Unequip can find it without a reverse scan
// (spec.md §3.6 `Equipped`).
type Equipped struct {
	Owner stableid.Id
	Slot  SlotKind
}

// InitializeEquipmentComponents registers the components this package owns.
func InitializeEquipmentComponents(manager *ecs.Manager) {
	ItemComponent = manager.NewComponent()
	InInventoryComponent = manager.NewComponent()
	InventoryComponent = manager.NewComponent()
	EquipmentSlotsComponent = manager.NewComponent()
	EquippableComponent = manager.NewComponent()
	EquippedComponent = manager.NewComponent()
}
