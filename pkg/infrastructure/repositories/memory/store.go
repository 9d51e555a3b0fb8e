package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// Store provides in-memory storage for components, inventory and hardware
// revisions. A single RWMutex serialises writers across all three
// collections, so every Update is an atomic read-modify-write.
type Store struct {
	mu         sync.RWMutex
	components *table[entities.ComponentID, *entities.Component]
	inventory  *table[entities.InventoryID, *entities.InventoryItem]
	revisions  *table[entities.RevisionID, *entities.HardwareRevision]
	newID      func() string
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator overrides the uuid-based identifier generator
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// NewStore creates an empty in-memory store
func NewStore(opts ...Option) *Store {
	s := &Store{
		components: newTable[entities.ComponentID, *entities.Component](64),
		inventory:  newTable[entities.InventoryID, *entities.InventoryItem](256),
		revisions:  newTable[entities.RevisionID, *entities.HardwareRevision](16),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify interface compliance
var _ repositories.Store = (*Store)(nil)

// Close is a no-op for the in-memory store
func (s *Store) Close() error {
	return nil
}
