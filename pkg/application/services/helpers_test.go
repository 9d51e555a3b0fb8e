package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/memory"
)

// stepClock returns strictly increasing timestamps
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), step: time.Minute}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func newTestCore(t testing.TB) (*Core, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewCore(store, Options{Clock: newStepClock()}), store
}

func mustComponent(t testing.TB, store *memory.Store, name string, mutate ...func(c *entities.Component)) entities.ComponentID {
	t.Helper()
	c, err := entities.NewComponent("Vendor", "Manufacturer")
	require.NoError(t, err)
	c.Name = name
	for _, fn := range mutate {
		fn(c)
	}
	saved, err := store.InsertComponent(c)
	require.NoError(t, err)
	return saved.ID
}

func mustStock(t testing.TB, store *memory.Store, id entities.ComponentID, state entities.InventoryState, qty entities.Quantity) {
	t.Helper()
	item, err := entities.NewInventoryItem(id, state, qty)
	require.NoError(t, err)
	_, err = store.InsertInventory(item)
	require.NoError(t, err)
}

func mustRevision(t testing.TB, store *memory.Store, name string, lines ...entities.BOMLine) entities.RevisionID {
	t.Helper()
	rev, err := entities.NewHardwareRevision(name, lines...)
	require.NoError(t, err)
	saved, err := store.InsertRevision(rev)
	require.NoError(t, err)
	return saved.ID
}
