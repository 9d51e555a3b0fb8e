package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/aim/pkg/domain/entities"
)

// Shortfall is the gap between required and available quantity for one BOM line
type Shortfall struct {
	ComponentID entities.ComponentID `json:"component_id"`
	Required    entities.Quantity    `json:"required"`
	Available   entities.Quantity    `json:"available"`
}

// Missing returns how many units are lacking
func (s Shortfall) Missing() entities.Quantity {
	return s.Required - s.Available
}

// AllocationCheck is the outcome of comparing a request against usable stock
type AllocationCheck struct {
	ComponentID entities.ComponentID `json:"component_id"`
	Requested   entities.Quantity    `json:"requested"`
	Available   entities.Quantity    `json:"available"`
	Sufficient  bool                 `json:"sufficient"`
}

// LeadTimeRow pairs quoted and realized procurement time for one component
type LeadTimeRow struct {
	ComponentID       entities.ComponentID `json:"component_id"`
	EstimatedLeadTime string               `json:"estimated_lead_time"`
	ActualLeadTime    int                  `json:"actual_lead_time"`
}

// FailureRateRow reports a component at or above the failure-rate threshold
type FailureRateRow struct {
	ComponentID entities.ComponentID `json:"component_id"`
	FailureRate float64              `json:"failure_rate"`
}

// CostPoint is a presentation-ready cost observation
type CostPoint struct {
	Value decimal.Decimal `json:"value"`
	Date  time.Time       `json:"date"`
}

// InventoryPatch lists the inventory fields to change. Nil fields are kept.
type InventoryPatch struct {
	ComponentID  *entities.ComponentID    `json:"component_id,omitempty"`
	State        *entities.InventoryState `json:"state,omitempty"`
	Quantity     *entities.Quantity       `json:"quantity,omitempty"`
	SerialNumber *string                  `json:"serial_number,omitempty"`
	KitID        *string                  `json:"kit_id,omitempty"`
	SubItems     *[]entities.InventoryID  `json:"sub_items,omitempty"`
	Note         string                   `json:"note,omitempty"`
}
