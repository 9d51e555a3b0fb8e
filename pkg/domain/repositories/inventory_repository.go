package repositories

import "github.com/vsinha/aim/pkg/domain/entities"

// InventoryMutator edits an inventory record in place. Returning an error aborts the update.
type InventoryMutator func(item *entities.InventoryItem) error

// InventoryRepository provides access to inventory records
type InventoryRepository interface {
	InsertInventory(item *entities.InventoryItem) (*entities.InventoryItem, error)
	GetInventory(id entities.InventoryID) (*entities.InventoryItem, error)
	UpdateInventory(id entities.InventoryID, fn InventoryMutator) (*entities.InventoryItem, error)
	DeleteInventory(id entities.InventoryID) error
	ListInventory() ([]*entities.InventoryItem, error)
	// ListInventoryByComponent returns the records of one component in insertion order.
	// An unknown component yields an empty slice, not an error.
	ListInventoryByComponent(componentID entities.ComponentID) ([]*entities.InventoryItem, error)
}
