package services

import (
	"fmt"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
	domain "github.com/vsinha/aim/pkg/domain/services"
)

// IntegrityChecker runs structural checks that the stores do not enforce
type IntegrityChecker struct {
	components repositories.ComponentRepository
	revisions  repositories.HardwareRevisionRepository
	inventory  repositories.InventoryRepository
	validator  *domain.BOMValidator
}

// NewIntegrityChecker creates an integrity checker
func NewIntegrityChecker(
	components repositories.ComponentRepository,
	revisions repositories.HardwareRevisionRepository,
	inventory repositories.InventoryRepository,
) *IntegrityChecker {
	return &IntegrityChecker{
		components: components,
		revisions:  revisions,
		inventory:  inventory,
		validator:  domain.NewBOMValidator(),
	}
}

// CheckRevision validates one revision's lines against the catalog
func (c *IntegrityChecker) CheckRevision(id entities.RevisionID) (*domain.ValidationResult, error) {
	rev, err := c.revisions.GetRevision(id)
	if err != nil {
		return nil, fmt.Errorf("check revision: %w", err)
	}
	catalog, err := c.components.ListComponents()
	if err != nil {
		return nil, fmt.Errorf("check revision: list components: %w", err)
	}
	return c.validator.ValidateRevision(rev, catalog), nil
}

// CheckKits validates the kit membership graph of the whole inventory
func (c *IntegrityChecker) CheckKits() (*domain.ValidationResult, error) {
	items, err := c.inventory.ListInventory()
	if err != nil {
		return nil, fmt.Errorf("check kits: %w", err)
	}
	return c.validator.ValidateKits(items), nil
}
