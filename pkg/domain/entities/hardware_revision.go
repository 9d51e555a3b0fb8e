package entities

import "strings"

// BOMLine represents a single requirement in a hardware revision's parts list
type BOMLine struct {
	ComponentID ComponentID `json:"component_id"`
	Quantity    Quantity    `json:"quantity"`
}

// NewBOMLine creates a validated BOMLine. A zero quantity defaults to 1.
func NewBOMLine(componentID ComponentID, quantity Quantity) (*BOMLine, error) {
	if quantity == 0 {
		quantity = 1
	}
	line := &BOMLine{ComponentID: componentID, Quantity: quantity}
	if err := line.Validate(); err != nil {
		return nil, err
	}
	return line, nil
}

// Validate checks the constraints of a BOM line
func (l BOMLine) Validate() error {
	if strings.TrimSpace(string(l.ComponentID)) == "" {
		return invalid("component_id", "cannot be empty")
	}
	if l.Quantity <= 0 {
		return invalid("quantity", "must be positive, got %d", l.Quantity)
	}
	return nil
}

// HardwareRevision is a named bill of materials. Lines are kept in the
// order given and are not deduplicated.
type HardwareRevision struct {
	ID         RevisionID `json:"id"`
	Name       string     `json:"name"`
	Components []BOMLine  `json:"components"`
}

// WithDefaultQuantities returns a copy of lines where an omitted (zero)
// quantity becomes 1
func WithDefaultQuantities(lines []BOMLine) []BOMLine {
	out := make([]BOMLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity == 0 {
			line.Quantity = 1
		}
		out = append(out, line)
	}
	return out
}

// NewHardwareRevision creates a validated HardwareRevision
func NewHardwareRevision(name string, lines ...BOMLine) (*HardwareRevision, error) {
	rev := &HardwareRevision{Name: name, Components: WithDefaultQuantities(lines)}
	if err := rev.Validate(); err != nil {
		return nil, err
	}
	return rev, nil
}

// Validate checks the constraints of a hardware revision
func (h *HardwareRevision) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return invalid("name", "cannot be empty")
	}
	for _, line := range h.Components {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the hardware revision
func (h *HardwareRevision) Clone() *HardwareRevision {
	clone := *h
	clone.Components = make([]BOMLine, len(h.Components))
	copy(clone.Components, h.Components)
	return &clone
}
