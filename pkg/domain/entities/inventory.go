package entities

import (
	"fmt"
	"strings"
	"time"
)

// InventoryState represents the lifecycle state of an inventory record
type InventoryState string

const (
	Ordered      InventoryState = "ordered"
	Received     InventoryState = "received"
	Setup        InventoryState = "setup"
	OnHandReady  InventoryState = "on-hand-ready"
	Allocated    InventoryState = "allocated"
	InProduction InventoryState = "in-production"
	Failed       InventoryState = "failed"
)

var allInventoryStates = []InventoryState{
	Ordered, Received, Setup, OnHandReady, Allocated, InProduction, Failed,
}

// AllInventoryStates returns the seven known states in lifecycle order
func AllInventoryStates() []InventoryState {
	states := make([]InventoryState, len(allInventoryStates))
	copy(states, allInventoryStates)
	return states
}

// ParseInventoryState converts a string into a known InventoryState
func ParseInventoryState(s string) (InventoryState, error) {
	state := InventoryState(strings.ToLower(strings.TrimSpace(s)))
	if !state.Valid() {
		return "", invalid("state", "must be one of %v, got %q", allInventoryStates, s)
	}
	return state, nil
}

// Valid reports whether s is one of the seven known states
func (s InventoryState) Valid() bool {
	for _, known := range allInventoryStates {
		if s == known {
			return true
		}
	}
	return false
}

// IsAvailableState reports whether stock in this state counts towards
// available quantity. Only on-hand-ready, allocated and in-production count.
func (s InventoryState) IsAvailableState() bool {
	switch s {
	case OnHandReady, Allocated, InProduction:
		return true
	default:
		return false
	}
}

// String method for InventoryState enum
func (s InventoryState) String() string {
	return string(s)
}

// StateChange annotates a state history entry of an inventory record
type StateChange struct {
	From InventoryState `json:"from,omitempty"`
	To   InventoryState `json:"to"`
	At   time.Time      `json:"at"`
	Note string         `json:"note,omitempty"`
}

// InventoryItem represents physical stock of a component in one lifecycle state
type InventoryItem struct {
	ID           InventoryID    `json:"id"`
	ComponentID  ComponentID    `json:"component_id"`
	State        InventoryState `json:"state"`
	Quantity     Quantity       `json:"quantity"`
	SerialNumber string         `json:"serial_number,omitempty"`
	KitID        string         `json:"kit_id,omitempty"`
	StateHistory []StateChange  `json:"state_history"`
	SubItems     []InventoryID  `json:"sub_items"`
}

// NewInventoryItem creates a validated InventoryItem
func NewInventoryItem(componentID ComponentID, state InventoryState, quantity Quantity) (*InventoryItem, error) {
	item := &InventoryItem{
		ComponentID:  componentID,
		State:        state,
		Quantity:     quantity,
		StateHistory: []StateChange{},
		SubItems:     []InventoryID{},
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the field-level constraints of an inventory record
func (i *InventoryItem) Validate() error {
	if strings.TrimSpace(string(i.ComponentID)) == "" {
		return invalid("component_id", "cannot be empty")
	}
	if !i.State.Valid() {
		return invalid("state", "must be one of %v, got %q", allInventoryStates, string(i.State))
	}
	if i.Quantity < 1 {
		return invalid("quantity", "must be at least 1, got %d", i.Quantity)
	}
	if i.SerialNumber != "" && strings.TrimSpace(i.SerialNumber) == "" {
		return invalid("serial_number", "cannot be empty if provided")
	}
	if i.KitID != "" && strings.TrimSpace(i.KitID) == "" {
		return invalid("kit_id", "cannot be empty if provided")
	}
	return nil
}

// SetState replaces the current state and records the change.
// Any known state may follow any other.
func (i *InventoryItem) SetState(to InventoryState, at time.Time, note string) error {
	if !to.Valid() {
		return invalid("state", "must be one of %v, got %q", allInventoryStates, string(to))
	}
	i.StateHistory = append(i.StateHistory, StateChange{From: i.State, To: to, At: at, Note: note})
	i.State = to
	return nil
}

// Clone returns a deep copy of the inventory record
func (i *InventoryItem) Clone() *InventoryItem {
	clone := *i
	clone.StateHistory = make([]StateChange, len(i.StateHistory))
	copy(clone.StateHistory, i.StateHistory)
	clone.SubItems = make([]InventoryID, len(i.SubItems))
	copy(clone.SubItems, i.SubItems)
	return &clone
}

// String returns a short description for logs and CLI output
func (i *InventoryItem) String() string {
	return fmt.Sprintf("%s(%s x%d %s)", i.ID, i.ComponentID, i.Quantity, i.State)
}
