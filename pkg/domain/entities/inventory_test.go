package entities

import (
	"testing"
	"time"
)

func TestInventoryItem_Validation(t *testing.T) {
	validItem, err := NewInventoryItem("COMP-1", OnHandReady, 5)
	if err != nil {
		t.Fatalf("Expected valid inventory creation to succeed: %v", err)
	}
	if validItem.Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", validItem.Quantity)
	}

	testCases := []struct {
		name        string
		componentID ComponentID
		state       InventoryState
		quantity    Quantity
		expectError string
	}{
		{"empty component", "", Ordered, 1, "component_id cannot be empty"},
		{"blank component", "  ", Ordered, 1, "component_id cannot be empty"},
		{"zero quantity", "COMP-1", Ordered, 0, "quantity must be at least 1, got 0"},
		{"negative quantity", "COMP-1", Ordered, -2, "quantity must be at least 1, got -2"},
		{
			"unknown state",
			"COMP-1",
			"lost",
			1,
			`state must be one of [ordered received setup on-hand-ready allocated in-production failed], got "lost"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInventoryItem(tc.componentID, tc.state, tc.quantity)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestInventoryItem_OptionalStrings(t *testing.T) {
	item := &InventoryItem{ComponentID: "COMP-1", State: Received, Quantity: 1, SerialNumber: " "}
	if err := item.Validate(); err == nil || err.Error() != "serial_number cannot be empty if provided" {
		t.Errorf("Expected blank serial to be rejected, got %v", err)
	}

	item = &InventoryItem{ComponentID: "COMP-1", State: Received, Quantity: 1, KitID: "\t"}
	if err := item.Validate(); err == nil || err.Error() != "kit_id cannot be empty if provided" {
		t.Errorf("Expected blank kit id to be rejected, got %v", err)
	}
}

func TestInventoryState_IsAvailableState(t *testing.T) {
	expected := map[InventoryState]bool{
		Ordered:      false,
		Received:     false,
		Setup:        false,
		OnHandReady:  true,
		Allocated:    true,
		InProduction: true,
		Failed:       false,
	}

	states := AllInventoryStates()
	if len(states) != len(expected) {
		t.Fatalf("Expected %d states, got %d", len(expected), len(states))
	}
	for _, state := range states {
		if state.IsAvailableState() != expected[state] {
			t.Errorf("State %s: expected available=%t", state, expected[state])
		}
	}

	if InventoryState("bogus").IsAvailableState() {
		t.Error("Unknown state must never count as available")
	}
}

func TestParseInventoryState(t *testing.T) {
	state, err := ParseInventoryState(" On-Hand-Ready ")
	if err != nil {
		t.Fatalf("Expected state to parse: %v", err)
	}
	if state != OnHandReady {
		t.Errorf("Expected on-hand-ready, got %s", state)
	}

	if _, err := ParseInventoryState("shipped"); err == nil {
		t.Error("Expected error for unknown state")
	}
}

func TestInventoryItem_SetState(t *testing.T) {
	item, _ := NewInventoryItem("COMP-1", Ordered, 1)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// No transition graph: ordered may jump straight to failed and back
	if err := item.SetState(Failed, at, "DOA"); err != nil {
		t.Fatalf("Expected transition to succeed: %v", err)
	}
	if err := item.SetState(InProduction, at.Add(time.Minute), ""); err != nil {
		t.Fatalf("Expected transition to succeed: %v", err)
	}

	if item.State != InProduction {
		t.Errorf("Expected state in-production, got %s", item.State)
	}
	if len(item.StateHistory) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(item.StateHistory))
	}
	first := item.StateHistory[0]
	if first.From != Ordered || first.To != Failed || first.Note != "DOA" || !first.At.Equal(at) {
		t.Errorf("Unexpected first history entry: %+v", first)
	}

	if err := item.SetState("teleported", at, ""); err == nil {
		t.Error("Expected invalid state to be rejected")
	}
	if item.State != InProduction || len(item.StateHistory) != 2 {
		t.Error("Rejected transition must not modify the record")
	}
}
