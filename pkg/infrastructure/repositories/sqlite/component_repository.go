package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// InsertComponent validates and stores a component, assigning an id when none is set
func (s *Store) InsertComponent(c *entities.Component) (*entities.Component, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	stored := normalizeComponent(c.Clone())
	if stored.ID == "" {
		stored.ID = entities.ComponentID(s.newID())
	}
	body, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode component %s: %w", stored.ID, err)
	}

	err = s.withTx(func(tx *sql.Tx) error {
		taken, err := exists(tx, componentsTable, string(stored.ID))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("component %s: %w", stored.ID, entities.ErrAlreadyExists)
		}
		_, err = tx.Exec(`INSERT INTO components (id, body) VALUES (?, ?)`, string(stored.ID), string(body))
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetComponent returns the component with the given id
func (s *Store) GetComponent(id entities.ComponentID) (*entities.Component, error) {
	var c entities.Component
	found, err := load(s.db, componentsTable, string(id), &c)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("component %s: %w", id, entities.ErrNotFound)
	}
	return normalizeComponent(&c), nil
}

// UpdateComponent applies fn to the stored component inside one transaction
func (s *Store) UpdateComponent(id entities.ComponentID, fn repositories.ComponentMutator) (*entities.Component, error) {
	var working entities.Component
	err := s.withTx(func(tx *sql.Tx) error {
		found, err := load(tx, componentsTable, string(id), &working)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("component %s: %w", id, entities.ErrNotFound)
		}
		normalizeComponent(&working)

		if err := fn(&working); err != nil {
			return err
		}
		working.ID = id
		if err := working.Validate(); err != nil {
			return err
		}

		body, err := json.Marshal(&working)
		if err != nil {
			return fmt.Errorf("encode component %s: %w", id, err)
		}
		_, err = tx.Exec(`UPDATE components SET body = ? WHERE id = ?`, string(body), string(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &working, nil
}

// DeleteComponent removes a component together with its cost history
func (s *Store) DeleteComponent(id entities.ComponentID) error {
	removed, err := s.remove(componentsTable, string(id))
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("component %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListComponents returns all components in insertion order
func (s *Store) ListComponents() ([]*entities.Component, error) {
	rows, err := bodies(s.db, `SELECT body FROM components ORDER BY seq`)
	if err != nil {
		return nil, err
	}

	components := make([]*entities.Component, 0, len(rows))
	for _, body := range rows {
		var c entities.Component
		if err := json.Unmarshal(body, &c); err != nil {
			return nil, fmt.Errorf("decode component: %w", err)
		}
		components = append(components, normalizeComponent(&c))
	}
	return components, nil
}

func normalizeComponent(c *entities.Component) *entities.Component {
	if c.Costs == nil {
		c.Costs = []entities.CostObservation{}
	}
	return c
}
