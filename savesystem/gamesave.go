package savesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"frontiersim/common"
	"frontiersim/equipment"
	"frontiersim/stableid"
)

// PlayerSaveData is the player half of GameSaveData (spec.md §4.8
// "player: {position, entity, inventory}"): the player entity's own save
// record plus the inventory items it owns, carried alongside rather than
// inside whichever zone the player happens to occupy at save time, so the
// player is always recoverable independent of per-zone save state.
type PlayerSaveData struct {
	Entity    SerializedEntity   `json:"entity"`
	Inventory []SerializedEntity `json:"inventory"`
}

// GameSaveData is the per-slot save record (spec.md §4.8, §6.3): the
// player, when the save was written, and the clock/seed needed to resume
// deterministic simulation.
type GameSaveData struct {
	Version       int            `json:"version"`
	Player        PlayerSaveData `json:"player"`
	SaveTimestamp string         `json:"save_timestamp"`
	Tick          uint32         `json:"tick"`
	Seed          uint32         `json:"seed"`
}

// HasGameSave reports whether this slot has a meta.json save record.
func (s *Store) HasGameSave() bool {
	_, err := os.Stat(s.metaFilePath())
	return err == nil
}

// SaveGame serializes the player entity, its inventory, and the clock/seed
// needed to resume (spec.md §4.8 "per save slot").
func (s *Store) SaveGame(em *common.EntityManager, playerID stableid.Id, tick, seed uint32, now time.Time) error {
	e := common.FindByStableID(em, playerID)
	if e == nil {
		return fmt.Errorf("savesystem: player entity %d not found", playerID)
	}

	playerSE, err := s.serializeEntity(e, playerID, true)
	if err != nil {
		return fmt.Errorf("serializing player: %w", err)
	}

	data := GameSaveData{
		Version:       CurrentSaveVersion,
		Player:        PlayerSaveData{Entity: playerSE},
		SaveTimestamp: now.UTC().Format(time.RFC3339),
		Tick:          tick,
		Seed:          seed,
	}

	if inv := common.GetComponentType[*equipment.Inventory](e, equipment.InventoryComponent); inv != nil {
		for _, itemID := range inv.Items {
			itemEnt := common.FindByStableID(em, itemID)
			if itemEnt == nil {
				continue
			}
			itemSE, err := s.serializeEntity(itemEnt, itemID, false)
			if err != nil {
				return fmt.Errorf("serializing player inventory item %d: %w", itemID, err)
			}
			data.Player.Inventory = append(data.Player.Inventory, itemSE)
		}
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling game save: %w", err)
	}
	raw, err := wrapEnvelope(payload)
	if err != nil {
		return fmt.Errorf("wrapping game save: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	return atomicWriteFile(s.metaFilePath(), raw)
}

// LoadGame reconstructs the player entity (and its inventory items) in em,
// returning the player's stable id, the saved tick, and the saved seed.
func (s *Store) LoadGame(em *common.EntityManager) (playerID stableid.Id, tick, seed uint32, err error) {
	raw, err := os.ReadFile(s.metaFilePath())
	if err != nil {
		return 0, 0, 0, fmt.Errorf("reading game save: %w", err)
	}
	payload, err := unwrapEnvelope(raw)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("game save: %w", err)
	}
	var data GameSaveData
	if err := json.Unmarshal(payload, &data); err != nil {
		return 0, 0, 0, fmt.Errorf("parsing game save: %w", err)
	}
	if data.Version > CurrentSaveVersion {
		return 0, 0, 0, fmt.Errorf("game save version %d is newer than supported version %d", data.Version, CurrentSaveVersion)
	}

	e := em.World.NewEntity()
	if err := decodeComponents(e, data.Player.Entity.Components); err != nil {
		return 0, 0, 0, fmt.Errorf("decoding player entity: %w", err)
	}
	if data.Player.Entity.HasPosition {
		e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: data.Player.Entity.Position})
	}
	em.RestoreStableID(e, data.Player.Entity.StableID)
	playerID = data.Player.Entity.StableID

	for _, itemSE := range data.Player.Inventory {
		itemEnt := em.World.NewEntity()
		if err := decodeComponents(itemEnt, itemSE.Components); err != nil {
			return 0, 0, 0, fmt.Errorf("decoding player inventory item %d: %w", itemSE.StableID, err)
		}
		em.RestoreStableID(itemEnt, itemSE.StableID)
	}

	return playerID, data.Tick, data.Seed, nil
}

// DeleteGameSave removes this slot's meta.json, a no-op if it doesn't
// exist.
func (s *Store) DeleteGameSave() error {
	err := os.Remove(s.metaFilePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
