package equipment

import (
	"fmt"

	"frontiersim/common"
	"frontiersim/spatialindex"
	"frontiersim/stableid"
)

// PickUp moves item from the world into owner's Inventory: removes its
// Position and zone index entry, adds InInventory{owner} (spec.md §4.5
// Pick-up/Drop/Equip/Unequip, "atomically").
func PickUp(em *common.EntityManager, zoneIdx *spatialindex.SpatialIndex, owner, item stableid.Id) error {
	ownerEnt := common.FindByStableID(em, owner)
	itemEnt := common.FindByStableID(em, item)
	if ownerEnt == nil || itemEnt == nil {
		return fmt.Errorf("equipment: pick up: owner or item not found")
	}
	if !itemEnt.HasComponent(ItemComponent) {
		return fmt.Errorf("equipment: entity %d is not an item", item)
	}

	itemEnt.RemoveComponent(common.PositionComponent)
	zoneIdx.Remove(spatialindex.Id(item))
	itemEnt.AddComponent(InInventoryComponent, &InInventory{Owner: owner})

	inv := common.GetComponentType[*Inventory](ownerEnt, InventoryComponent)
	if inv == nil {
		inv = &Inventory{}
		ownerEnt.AddComponent(InventoryComponent, inv)
	}
	inv.Items = append(inv.Items, item)
	return nil
}

// Drop moves item out of its owner's Inventory back into the world at
// pos. Refuses if the item is currently equipped — Unequip first.
func Drop(em *common.EntityManager, zoneIdx *spatialindex.SpatialIndex, owner, item stableid.Id, pos common.Position) error {
	ownerEnt := common.FindByStableID(em, owner)
	itemEnt := common.FindByStableID(em, item)
	if ownerEnt == nil || itemEnt == nil {
		return fmt.Errorf("equipment: drop: owner or item not found")
	}
	if itemEnt.HasComponent(EquippedComponent) {
		return fmt.Errorf("equipment: item %d is equipped, unequip before dropping", item)
	}

	inv := common.GetComponentType[*Inventory](ownerEnt, InventoryComponent)
	if inv == nil || !inv.Contains(item) {
		return fmt.Errorf("equipment: item %d not in owner %d's inventory", item, owner)
	}
	inv.remove(item)

	itemEnt.RemoveComponent(InInventoryComponent)
	itemEnt.AddComponent(common.PositionComponent, &pos)
	zoneIdx.Insert(pos.X, pos.Y, spatialindex.Id(item))
	return nil
}

// Equip moves item from owner's Inventory into one of owner's
// EquipmentSlots, replacing (and implicitly unequipping) whatever
// currently occupies that slot, and grants item's StatModifiers.
func Equip(em *common.EntityManager, owner, item stableid.Id) error {
	ownerEnt := common.FindByStableID(em, owner)
	itemEnt := common.FindByStableID(em, item)
	if ownerEnt == nil || itemEnt == nil {
		return fmt.Errorf("equipment: equip: owner or item not found")
	}

	inv := common.GetComponentType[*Inventory](ownerEnt, InventoryComponent)
	if inv == nil || !inv.Contains(item) {
		return fmt.Errorf("equipment: item %d must be in owner %d's inventory to equip", item, owner)
	}

	equippable := common.GetComponentType[*Equippable](itemEnt, EquippableComponent)
	if equippable == nil {
		return fmt.Errorf("equipment: item %d is not equippable", item)
	}

	slots := common.GetComponentType[*EquipmentSlots](ownerEnt, EquipmentSlotsComponent)
	if slots == nil {
		fresh := NewEquipmentSlots()
		slots = &fresh
		ownerEnt.AddComponent(EquipmentSlotsComponent, slots)
	}

	if current := slots.Equipped(equippable.Slot); current != stableid.NoId {
		if err := Unequip(em, owner, current); err != nil {
			return err
		}
	}

	slots.Slots[equippable.Slot] = item
	itemEnt.AddComponent(EquippedComponent, &Equipped{Owner: owner, Slot: equippable.Slot})

	mods := common.GetComponentType[*common.StatModifiers](ownerEnt, common.StatModifiersComponent)
	if mods == nil {
		mods = &common.StatModifiers{}
		ownerEnt.AddComponent(common.StatModifiersComponent, mods)
	}
	source := common.EquipmentSource(uint64(item))
	for _, grant := range equippable.Modifiers {
		mods.Add(common.StatModifier{Source: source, Stat: grant.Stat, Amount: grant.Amount})
	}
	return nil
}

// Unequip removes item from whichever slot it occupies and strips every
// StatModifier it granted (spec.md §4.5 "Unequip removes the same
// modifiers by source").
func Unequip(em *common.EntityManager, owner, item stableid.Id) error {
	ownerEnt := common.FindByStableID(em, owner)
	itemEnt := common.FindByStableID(em, item)
	if ownerEnt == nil || itemEnt == nil {
		return fmt.Errorf("equipment: unequip: owner or item not found")
	}

	equipped := common.GetComponentType[*Equipped](itemEnt, EquippedComponent)
	if equipped == nil || equipped.Owner != owner {
		return fmt.Errorf("equipment: item %d is not equipped by owner %d", item, owner)
	}

	slots := common.GetComponentType[*EquipmentSlots](ownerEnt, EquipmentSlotsComponent)
	if slots != nil && slots.Slots != nil {
		delete(slots.Slots, equipped.Slot)
	}
	itemEnt.RemoveComponent(EquippedComponent)

	mods := common.GetComponentType[*common.StatModifiers](ownerEnt, common.StatModifiersComponent)
	if mods != nil {
		mods.RemoveBySource(common.EquipmentSource(uint64(item)))
	}
	return nil
}
