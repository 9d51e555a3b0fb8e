package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// InsertInventory validates and stores an inventory record
func (s *Store) InsertInventory(item *entities.InventoryItem) (*entities.InventoryItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	stored := normalizeInventory(item.Clone())
	if stored.ID == "" {
		stored.ID = entities.InventoryID(s.newID())
	}
	body, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode inventory %s: %w", stored.ID, err)
	}

	err = s.withTx(func(tx *sql.Tx) error {
		taken, err := exists(tx, inventoryTable, string(stored.ID))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("inventory %s: %w", stored.ID, entities.ErrAlreadyExists)
		}
		_, err = tx.Exec(`INSERT INTO inventory (id, component_id, body) VALUES (?, ?, ?)`,
			string(stored.ID), string(stored.ComponentID), string(body))
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetInventory returns the inventory record with the given id
func (s *Store) GetInventory(id entities.InventoryID) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	found, err := load(s.db, inventoryTable, string(id), &item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("inventory %s: %w", id, entities.ErrNotFound)
	}
	return normalizeInventory(&item), nil
}

// UpdateInventory applies fn to the stored record inside one transaction
func (s *Store) UpdateInventory(id entities.InventoryID, fn repositories.InventoryMutator) (*entities.InventoryItem, error) {
	var working entities.InventoryItem
	err := s.withTx(func(tx *sql.Tx) error {
		found, err := load(tx, inventoryTable, string(id), &working)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("inventory %s: %w", id, entities.ErrNotFound)
		}
		normalizeInventory(&working)

		if err := fn(&working); err != nil {
			return err
		}
		working.ID = id
		if err := working.Validate(); err != nil {
			return err
		}

		body, err := json.Marshal(&working)
		if err != nil {
			return fmt.Errorf("encode inventory %s: %w", id, err)
		}
		_, err = tx.Exec(`UPDATE inventory SET component_id = ?, body = ? WHERE id = ?`,
			string(working.ComponentID), string(body), string(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &working, nil
}

// DeleteInventory removes a single inventory record
func (s *Store) DeleteInventory(id entities.InventoryID) error {
	removed, err := s.remove(inventoryTable, string(id))
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("inventory %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListInventory returns all inventory records in insertion order
func (s *Store) ListInventory() ([]*entities.InventoryItem, error) {
	rows, err := bodies(s.db, `SELECT body FROM inventory ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	return decodeInventory(rows)
}

// ListInventoryByComponent returns the records owned by one component
func (s *Store) ListInventoryByComponent(componentID entities.ComponentID) ([]*entities.InventoryItem, error) {
	rows, err := bodies(s.db, `SELECT body FROM inventory WHERE component_id = ? ORDER BY seq`, string(componentID))
	if err != nil {
		return nil, err
	}
	return decodeInventory(rows)
}

func decodeInventory(rows [][]byte) ([]*entities.InventoryItem, error) {
	items := make([]*entities.InventoryItem, 0, len(rows))
	for _, body := range rows {
		var item entities.InventoryItem
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, fmt.Errorf("decode inventory: %w", err)
		}
		items = append(items, normalizeInventory(&item))
	}
	return items, nil
}

func normalizeInventory(item *entities.InventoryItem) *entities.InventoryItem {
	if item.StateHistory == nil {
		item.StateHistory = []entities.StateChange{}
	}
	if item.SubItems == nil {
		item.SubItems = []entities.InventoryID{}
	}
	return item
}
