package memory

import (
	"fmt"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// InsertInventory validates and stores an inventory record.
// The owning component is not checked; references are kept by convention only.
func (s *Store) InsertInventory(item *entities.InventoryItem) (*entities.InventoryItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := item.Clone()
	if stored.ID == "" {
		stored.ID = entities.InventoryID(s.newID())
	}
	if s.inventory.has(stored.ID) {
		return nil, fmt.Errorf("inventory %s: %w", stored.ID, entities.ErrAlreadyExists)
	}
	s.inventory.insert(stored.ID, stored)
	return stored.Clone(), nil
}

// GetInventory returns a copy of the inventory record with the given id
func (s *Store) GetInventory(id entities.InventoryID) (*entities.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.inventory.get(id)
	if !exists {
		return nil, fmt.Errorf("inventory %s: %w", id, entities.ErrNotFound)
	}
	return item.Clone(), nil
}

// UpdateInventory applies fn atomically to the inventory record
func (s *Store) UpdateInventory(id entities.InventoryID, fn repositories.InventoryMutator) (*entities.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.inventory.get(id)
	if !exists {
		return nil, fmt.Errorf("inventory %s: %w", id, entities.ErrNotFound)
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id
	if err := working.Validate(); err != nil {
		return nil, err
	}

	s.inventory.replace(id, working)
	return working.Clone(), nil
}

// DeleteInventory removes a single inventory record
func (s *Store) DeleteInventory(id entities.InventoryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inventory.remove(id) {
		return fmt.Errorf("inventory %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListInventory returns copies of all inventory records in insertion order
func (s *Store) ListInventory() ([]*entities.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*entities.InventoryItem, 0, s.inventory.len())
	for _, item := range s.inventory.all() {
		items = append(items, item.Clone())
	}
	return items, nil
}

// ListInventoryByComponent returns the records owned by one component
func (s *Store) ListInventoryByComponent(componentID entities.ComponentID) ([]*entities.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []*entities.InventoryItem{}
	for _, item := range s.inventory.all() {
		if item.ComponentID == componentID {
			items = append(items, item.Clone())
		}
	}
	return items, nil
}
