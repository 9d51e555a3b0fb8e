package entities

// Quantity represents an integer quantity value for discrete hardware units
type Quantity int64

// ComponentID identifies a component catalog entry
type ComponentID string

// InventoryID identifies a single inventory record
type InventoryID string

// RevisionID identifies a hardware revision
type RevisionID string
