package repositories

import "github.com/vsinha/aim/pkg/domain/entities"

// ComponentMutator edits a component in place. Returning an error aborts the update.
type ComponentMutator func(c *entities.Component) error

// ComponentRepository provides access to the component catalog.
// Lookups of unknown ids return an error wrapping entities.ErrNotFound.
type ComponentRepository interface {
	InsertComponent(c *entities.Component) (*entities.Component, error)
	GetComponent(id entities.ComponentID) (*entities.Component, error)
	// UpdateComponent applies fn atomically; the result is re-validated before it is stored.
	UpdateComponent(id entities.ComponentID, fn ComponentMutator) (*entities.Component, error)
	DeleteComponent(id entities.ComponentID) error
	// ListComponents returns all components in insertion order.
	ListComponents() ([]*entities.Component, error)
}
