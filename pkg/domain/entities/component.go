package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CostObservation records a single price point for a component
type CostObservation struct {
	Value decimal.Decimal `json:"value"`
	Date  time.Time       `json:"date"`
}

// Component represents a part catalog entry
type Component struct {
	ID                ComponentID       `json:"id"`
	VendorName        string            `json:"vendor_name"`
	ManufacturerName  string            `json:"manufacturer_name"`
	Model             string            `json:"model,omitempty"`
	Name              string            `json:"name,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	OrderLink         string            `json:"order_link,omitempty"`
	VendorOwner       string            `json:"vendor_owner,omitempty"`
	PreSetupRequired  bool              `json:"pre_setup_required"`
	EstimatedLeadTime string            `json:"estimated_lead_time,omitempty"`
	ActualLeadTime    int               `json:"actual_lead_time"`
	FailureRate       float64           `json:"failure_rate"`
	Cost              *decimal.Decimal  `json:"cost,omitempty"`
	Costs             []CostObservation `json:"costs"`
}

// NewComponent creates a validated Component
func NewComponent(vendorName, manufacturerName string) (*Component, error) {
	c := &Component{
		VendorName:       vendorName,
		ManufacturerName: manufacturerName,
		Costs:            []CostObservation{},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the field-level constraints of a component
func (c *Component) Validate() error {
	if strings.TrimSpace(c.VendorName) == "" {
		return invalid("vendor_name", "cannot be empty")
	}
	if strings.TrimSpace(c.ManufacturerName) == "" {
		return invalid("manufacturer_name", "cannot be empty")
	}
	// Model and name are optional, but a present value must not be blank
	if c.Model != "" && strings.TrimSpace(c.Model) == "" {
		return invalid("model", "cannot be empty")
	}
	if c.Name != "" && strings.TrimSpace(c.Name) == "" {
		return invalid("name", "cannot be empty")
	}
	if c.ActualLeadTime < 0 {
		return invalid("actual_lead_time", "must be non-negative, got %d", c.ActualLeadTime)
	}
	if c.FailureRate < 0 {
		return invalid("failure_rate", "must be non-negative, got %g", c.FailureRate)
	}
	if c.Cost != nil && c.Cost.IsNegative() {
		return invalid("cost", "must be non-negative, got %s", c.Cost.String())
	}
	if link := strings.TrimSpace(c.OrderLink); link != "" &&
		!strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return invalid("order_link", "must be a valid URL")
	}
	return nil
}

// AppendCost records a new observation and moves the cost snapshot to it.
// Callers are responsible for rejecting negative values.
func (c *Component) AppendCost(value decimal.Decimal, at time.Time) {
	c.Costs = append(c.Costs, CostObservation{Value: value, Date: at})
	snapshot := value
	c.Cost = &snapshot
}

// Clone returns a deep copy of the component
func (c *Component) Clone() *Component {
	clone := *c
	clone.Costs = make([]CostObservation, len(c.Costs))
	copy(clone.Costs, c.Costs)
	if c.Cost != nil {
		cost := *c.Cost
		clone.Cost = &cost
	}
	return &clone
}
