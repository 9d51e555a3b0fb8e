package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// InsertRevision validates and stores a hardware revision
func (s *Store) InsertRevision(rev *entities.HardwareRevision) (*entities.HardwareRevision, error) {
	if err := rev.Validate(); err != nil {
		return nil, err
	}

	stored := normalizeRevision(rev.Clone())
	if stored.ID == "" {
		stored.ID = entities.RevisionID(s.newID())
	}
	body, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode hardware revision %s: %w", stored.ID, err)
	}

	err = s.withTx(func(tx *sql.Tx) error {
		taken, err := exists(tx, revisionsTable, string(stored.ID))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("hardware revision %s: %w", stored.ID, entities.ErrAlreadyExists)
		}
		_, err = tx.Exec(`INSERT INTO revisions (id, body) VALUES (?, ?)`, string(stored.ID), string(body))
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetRevision returns the hardware revision with the given id
func (s *Store) GetRevision(id entities.RevisionID) (*entities.HardwareRevision, error) {
	var rev entities.HardwareRevision
	found, err := load(s.db, revisionsTable, string(id), &rev)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("hardware revision %s: %w", id, entities.ErrNotFound)
	}
	return normalizeRevision(&rev), nil
}

// UpdateRevision applies fn to the stored revision inside one transaction
func (s *Store) UpdateRevision(id entities.RevisionID, fn repositories.RevisionMutator) (*entities.HardwareRevision, error) {
	var working entities.HardwareRevision
	err := s.withTx(func(tx *sql.Tx) error {
		found, err := load(tx, revisionsTable, string(id), &working)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("hardware revision %s: %w", id, entities.ErrNotFound)
		}
		normalizeRevision(&working)

		if err := fn(&working); err != nil {
			return err
		}
		working.ID = id
		if err := working.Validate(); err != nil {
			return err
		}

		body, err := json.Marshal(&working)
		if err != nil {
			return fmt.Errorf("encode hardware revision %s: %w", id, err)
		}
		_, err = tx.Exec(`UPDATE revisions SET body = ? WHERE id = ?`, string(body), string(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &working, nil
}

// DeleteRevision removes a hardware revision
func (s *Store) DeleteRevision(id entities.RevisionID) error {
	removed, err := s.remove(revisionsTable, string(id))
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("hardware revision %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListRevisions returns all hardware revisions in insertion order
func (s *Store) ListRevisions() ([]*entities.HardwareRevision, error) {
	rows, err := bodies(s.db, `SELECT body FROM revisions ORDER BY seq`)
	if err != nil {
		return nil, err
	}

	revisions := make([]*entities.HardwareRevision, 0, len(rows))
	for _, body := range rows {
		var rev entities.HardwareRevision
		if err := json.Unmarshal(body, &rev); err != nil {
			return nil, fmt.Errorf("decode hardware revision: %w", err)
		}
		revisions = append(revisions, normalizeRevision(&rev))
	}
	return revisions, nil
}

func normalizeRevision(rev *entities.HardwareRevision) *entities.HardwareRevision {
	if rev.Components == nil {
		rev.Components = []entities.BOMLine{}
	}
	return rev
}
