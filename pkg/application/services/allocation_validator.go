package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
	"github.com/vsinha/aim/pkg/infrastructure/logging"
	"github.com/vsinha/aim/pkg/infrastructure/metrics"
)

// AllocationValidator computes usable on-hand quantity and checks requests against it
type AllocationValidator struct {
	inventory repositories.InventoryRepository
	logger    *zap.Logger
	metrics   *metrics.Recorder
}

// NewAllocationValidator creates an allocation validator
func NewAllocationValidator(
	inventory repositories.InventoryRepository,
	logger *zap.Logger,
	recorder *metrics.Recorder,
) *AllocationValidator {
	return &AllocationValidator{
		inventory: inventory,
		logger:    logging.OrNop(logger),
		metrics:   recorder,
	}
}

// AvailableQuantity sums the quantity of a component's records whose state
// counts as available. An unknown component has 0 available.
func (v *AllocationValidator) AvailableQuantity(id entities.ComponentID) (entities.Quantity, error) {
	items, err := v.inventory.ListInventoryByComponent(id)
	if err != nil {
		return 0, fmt.Errorf("available quantity for %s: %w", id, err)
	}
	return availableByComponent(items)[id], nil
}

// ValidateAllocation reports whether the available quantity covers requested.
// It has no side effects.
func (v *AllocationValidator) ValidateAllocation(id entities.ComponentID, requested entities.Quantity) (dto.AllocationCheck, error) {
	if requested < 0 {
		return dto.AllocationCheck{}, &entities.ValidationError{
			Field:  "requested_quantity",
			Reason: fmt.Sprintf("cannot be negative, got %d", requested),
		}
	}
	start := time.Now()
	defer v.metrics.ObserveDuration("validate_allocation", start)

	available, err := v.AvailableQuantity(id)
	if err != nil {
		return dto.AllocationCheck{}, err
	}

	check := dto.AllocationCheck{
		ComponentID: id,
		Requested:   requested,
		Available:   available,
		Sufficient:  available >= requested,
	}
	v.metrics.RecordAllocationCheck(check.Sufficient)
	v.logger.Debug("allocation checked",
		zap.String("component_id", string(id)),
		zap.Int64("requested", int64(requested)),
		zap.Int64("available", int64(available)),
		zap.Bool("sufficient", check.Sufficient),
	)
	return check, nil
}

// availableByComponent totals available-state quantity per component over one
// snapshot of inventory records
func availableByComponent(items []*entities.InventoryItem) map[entities.ComponentID]entities.Quantity {
	totals := make(map[entities.ComponentID]entities.Quantity)
	for _, item := range items {
		if item.State.IsAvailableState() {
			totals[item.ComponentID] += item.Quantity
		}
	}
	return totals
}
