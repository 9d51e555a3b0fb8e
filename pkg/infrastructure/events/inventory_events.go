package events

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
)

const (
	CostRecordedEvent = "cost.recorded"

	InventoryStockedEvent      = "inventory.stocked"
	InventoryStateChangedEvent = "inventory.state_changed"
	InventoryKittedEvent       = "inventory.kitted"

	ShortageIdentifiedEvent = "shortage.identified"
	RevisionBuildableEvent  = "revision.buildable"
)

// Stream id prefixes, one stream per entity
const (
	ComponentStream = "component-"
	InventoryStream = "inventory-"
	RevisionStream  = "revision-"
)

type CostRecorded struct {
	ComponentID entities.ComponentID `json:"component_id"`
	Value       decimal.Decimal      `json:"value"`
}

type InventoryStocked struct {
	ComponentID entities.ComponentID    `json:"component_id"`
	State       entities.InventoryState `json:"state"`
	Records     []entities.InventoryID  `json:"records"`
}

type InventoryStateChanged struct {
	InventoryID entities.InventoryID    `json:"inventory_id"`
	From        entities.InventoryState `json:"from"`
	To          entities.InventoryState `json:"to"`
	Note        string                  `json:"note,omitempty"`
}

type InventoryKitted struct {
	KitID    string                 `json:"kit_id"`
	ParentID entities.InventoryID   `json:"parent_id"`
	Members  []entities.InventoryID `json:"members"`
}

type ShortageIdentified struct {
	RevisionID entities.RevisionID `json:"revision_id"`
	Mode       string              `json:"mode"`
	Shortfalls []dto.Shortfall     `json:"shortfalls"`
}

type RevisionBuildable struct {
	RevisionID entities.RevisionID `json:"revision_id"`
	Mode       string              `json:"mode"`
}
