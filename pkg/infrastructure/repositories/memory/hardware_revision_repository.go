package memory

import (
	"fmt"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// InsertRevision validates and stores a hardware revision
func (s *Store) InsertRevision(rev *entities.HardwareRevision) (*entities.HardwareRevision, error) {
	if err := rev.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := rev.Clone()
	if stored.ID == "" {
		stored.ID = entities.RevisionID(s.newID())
	}
	if s.revisions.has(stored.ID) {
		return nil, fmt.Errorf("hardware revision %s: %w", stored.ID, entities.ErrAlreadyExists)
	}
	s.revisions.insert(stored.ID, stored)
	return stored.Clone(), nil
}

// GetRevision returns a copy of the hardware revision with the given id
func (s *Store) GetRevision(id entities.RevisionID) (*entities.HardwareRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rev, exists := s.revisions.get(id)
	if !exists {
		return nil, fmt.Errorf("hardware revision %s: %w", id, entities.ErrNotFound)
	}
	return rev.Clone(), nil
}

// UpdateRevision applies fn atomically to the hardware revision
func (s *Store) UpdateRevision(id entities.RevisionID, fn repositories.RevisionMutator) (*entities.HardwareRevision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.revisions.get(id)
	if !exists {
		return nil, fmt.Errorf("hardware revision %s: %w", id, entities.ErrNotFound)
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id
	if err := working.Validate(); err != nil {
		return nil, err
	}

	s.revisions.replace(id, working)
	return working.Clone(), nil
}

// DeleteRevision removes a hardware revision
func (s *Store) DeleteRevision(id entities.RevisionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.revisions.remove(id) {
		return fmt.Errorf("hardware revision %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListRevisions returns copies of all hardware revisions in insertion order
func (s *Store) ListRevisions() ([]*entities.HardwareRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	revisions := make([]*entities.HardwareRevision, 0, s.revisions.len())
	for _, rev := range s.revisions.all() {
		revisions = append(revisions, rev.Clone())
	}
	return revisions, nil
}
