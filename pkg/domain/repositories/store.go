package repositories

// Store bundles the three entity collections behind one backing implementation
type Store interface {
	ComponentRepository
	InventoryRepository
	HardwareRevisionRepository
	Close() error
}
