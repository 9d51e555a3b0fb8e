package memory

import (
	"fmt"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// InsertComponent validates and stores a component, assigning an id when none is set
func (s *Store) InsertComponent(c *entities.Component) (*entities.Component, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := c.Clone()
	if stored.ID == "" {
		stored.ID = entities.ComponentID(s.newID())
	}
	if s.components.has(stored.ID) {
		return nil, fmt.Errorf("component %s: %w", stored.ID, entities.ErrAlreadyExists)
	}
	s.components.insert(stored.ID, stored)
	return stored.Clone(), nil
}

// GetComponent returns a copy of the component with the given id
func (s *Store) GetComponent(id entities.ComponentID) (*entities.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.components.get(id)
	if !exists {
		return nil, fmt.Errorf("component %s: %w", id, entities.ErrNotFound)
	}
	return c.Clone(), nil
}

// UpdateComponent applies fn to a working copy under the write lock and
// stores it only if fn succeeds and the result validates
func (s *Store) UpdateComponent(id entities.ComponentID, fn repositories.ComponentMutator) (*entities.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.components.get(id)
	if !exists {
		return nil, fmt.Errorf("component %s: %w", id, entities.ErrNotFound)
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id
	if err := working.Validate(); err != nil {
		return nil, err
	}

	s.components.replace(id, working)
	return working.Clone(), nil
}

// DeleteComponent removes a component together with its cost history
func (s *Store) DeleteComponent(id entities.ComponentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.components.remove(id) {
		return fmt.Errorf("component %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListComponents returns copies of all components in insertion order
func (s *Store) ListComponents() ([]*entities.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	components := make([]*entities.Component, 0, s.components.len())
	for _, c := range s.components.all() {
		components = append(components, c.Clone())
	}
	return components, nil
}
