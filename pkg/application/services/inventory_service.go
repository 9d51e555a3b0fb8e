package services

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
	"github.com/vsinha/aim/pkg/infrastructure/events"
	"github.com/vsinha/aim/pkg/infrastructure/logging"
	"github.com/vsinha/aim/pkg/infrastructure/metrics"
)

// InventoryService handles stocking events, state changes and kitting
type InventoryService struct {
	inventory repositories.InventoryRepository
	clock     Clock
	logger    *zap.Logger
	metrics   *metrics.Recorder
	audit     auditTrail
}

// NewInventoryService creates an inventory service. A nil clock uses the system clock.
func NewInventoryService(
	inventory repositories.InventoryRepository,
	clock Clock,
	logger *zap.Logger,
	recorder *metrics.Recorder,
) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		clock:     orSystemClock(clock),
		logger:    logging.OrNop(logger),
		metrics:   recorder,
	}
}

// Stock records a stocking event for template.Quantity physical units.
// Each unit becomes its own record with quantity 1, so the units summed
// across the returned records always equal the stocked quantity.
// A serial number identifies a single unit and is rejected for quantities above 1.
func (s *InventoryService) Stock(template *entities.InventoryItem) ([]*entities.InventoryItem, error) {
	if template == nil {
		return nil, &entities.ValidationError{Field: "inventory", Reason: "cannot be nil"}
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	if template.SerialNumber != "" && template.Quantity > 1 {
		return nil, &entities.ValidationError{
			Field:  "serial_number",
			Reason: fmt.Sprintf("identifies a single unit but quantity is %d", template.Quantity),
		}
	}

	now := s.clock.Now()
	created := make([]*entities.InventoryItem, 0, template.Quantity)
	for i := entities.Quantity(0); i < template.Quantity; i++ {
		unit := template.Clone()
		unit.Quantity = 1
		if template.Quantity > 1 {
			unit.ID = ""
		}
		unit.StateHistory = []entities.StateChange{{To: unit.State, At: now, Note: "stocked"}}

		saved, err := s.inventory.InsertInventory(unit)
		if err != nil {
			s.rollback(created)
			return nil, fmt.Errorf("stock %s: %w", template.ComponentID, err)
		}
		created = append(created, saved)
	}

	s.metrics.RecordStocked(len(created))
	stocked := events.InventoryStocked{ComponentID: template.ComponentID, State: template.State}
	for _, item := range created {
		stocked.Records = append(stocked.Records, item.ID)
	}
	s.audit.publishAt(events.InventoryStockedEvent, events.ComponentStream+string(template.ComponentID), stocked, now)
	s.logger.Info("inventory stocked",
		zap.String("component_id", string(template.ComponentID)),
		zap.String("state", template.State.String()),
		zap.Int("records", len(created)),
	)
	return created, nil
}

// SetState moves a record to any known state and appends a history annotation
func (s *InventoryService) SetState(id entities.InventoryID, state entities.InventoryState, note string) (*entities.InventoryItem, error) {
	var from entities.InventoryState
	var at time.Time
	updated, err := s.inventory.UpdateInventory(id, func(item *entities.InventoryItem) error {
		from = item.State
		at = s.clock.Now()
		return item.SetState(state, at, note)
	})
	if err != nil {
		return nil, fmt.Errorf("set state: %w", err)
	}

	s.audit.publishAt(events.InventoryStateChangedEvent, events.InventoryStream+string(id),
		events.InventoryStateChanged{InventoryID: id, From: from, To: state, Note: note}, at)
	s.logger.Info("inventory state changed",
		zap.String("inventory_id", string(id)),
		zap.String("from", from.String()),
		zap.String("to", state.String()),
	)
	return updated, nil
}

// Update applies the non-nil fields of patch to one record in a single
// atomic update. A state change is recorded in the history like SetState.
func (s *InventoryService) Update(id entities.InventoryID, patch dto.InventoryPatch) (*entities.InventoryItem, error) {
	var (
		from    entities.InventoryState
		changed bool
		at      time.Time
	)
	updated, err := s.inventory.UpdateInventory(id, func(item *entities.InventoryItem) error {
		from = item.State
		if patch.ComponentID != nil {
			item.ComponentID = *patch.ComponentID
		}
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.SerialNumber != nil {
			item.SerialNumber = *patch.SerialNumber
		}
		if patch.KitID != nil {
			item.KitID = *patch.KitID
		}
		if patch.SubItems != nil {
			item.SubItems = append([]entities.InventoryID{}, *patch.SubItems...)
		}
		if err := item.Validate(); err != nil {
			return err
		}
		if item.SerialNumber != "" && item.Quantity > 1 {
			return &entities.ValidationError{
				Field:  "serial_number",
				Reason: fmt.Sprintf("identifies a single unit but quantity is %d", item.Quantity),
			}
		}
		if patch.State != nil && *patch.State != item.State {
			changed = true
			at = s.clock.Now()
			return item.SetState(*patch.State, at, patch.Note)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update inventory: %w", err)
	}

	if changed {
		s.audit.publishAt(events.InventoryStateChangedEvent, events.InventoryStream+string(id),
			events.InventoryStateChanged{InventoryID: id, From: from, To: updated.State, Note: patch.Note}, at)
	}
	s.logger.Info("inventory updated",
		zap.String("inventory_id", string(id)),
		zap.Bool("state_changed", changed),
	)
	return updated, nil
}

// Kit creates a kitted parent record for componentID that lists members as
// sub items, and stamps kitID on every member. All members must exist.
func (s *InventoryService) Kit(
	kitID string,
	componentID entities.ComponentID,
	state entities.InventoryState,
	members ...entities.InventoryID,
) (*entities.InventoryItem, error) {
	if strings.TrimSpace(kitID) == "" {
		return nil, &entities.ValidationError{Field: "kit_id", Reason: "cannot be empty"}
	}
	if len(members) == 0 {
		return nil, &entities.ValidationError{Field: "sub_items", Reason: "kit needs at least one member"}
	}
	for _, id := range members {
		member, err := s.inventory.GetInventory(id)
		if err != nil {
			return nil, fmt.Errorf("kit %s: %w", kitID, err)
		}
		if err := checkKitMembership(member, kitID); err != nil {
			return nil, err
		}
	}

	parent, err := entities.NewInventoryItem(componentID, state, 1)
	if err != nil {
		return nil, err
	}
	parent.KitID = kitID
	parent.SubItems = append(parent.SubItems, members...)
	now := s.clock.Now()
	parent.StateHistory = []entities.StateChange{{To: state, At: now, Note: "kitted"}}

	saved, err := s.inventory.InsertInventory(parent)
	if err != nil {
		return nil, fmt.Errorf("kit %s: %w", kitID, err)
	}

	stamped := make(map[entities.InventoryID]string, len(members))
	for _, id := range members {
		var previous string
		_, err := s.inventory.UpdateInventory(id, func(item *entities.InventoryItem) error {
			if err := checkKitMembership(item, kitID); err != nil {
				return err
			}
			previous = item.KitID
			item.KitID = kitID
			return nil
		})
		if err != nil {
			s.unkit(saved.ID, stamped)
			return nil, fmt.Errorf("kit %s: member %s: %w", kitID, id, err)
		}
		stamped[id] = previous
	}

	s.audit.publishAt(events.InventoryKittedEvent, events.InventoryStream+string(saved.ID),
		events.InventoryKitted{KitID: kitID, ParentID: saved.ID, Members: members}, now)
	s.logger.Info("kit assembled",
		zap.String("kit_id", kitID),
		zap.String("inventory_id", string(saved.ID)),
		zap.Int("members", len(members)),
	)
	return saved, nil
}

// checkKitMembership rejects a member that already belongs to another kit
func checkKitMembership(item *entities.InventoryItem, kitID string) error {
	if item.KitID != "" && item.KitID != kitID {
		return &entities.ValidationError{
			Field:  "kit_id",
			Reason: fmt.Sprintf("inventory %s already belongs to kit %s", item.ID, item.KitID),
		}
	}
	return nil
}

// unkit undoes a partially assembled kit: the parent is removed and each
// stamped member gets its previous kit id back
func (s *InventoryService) unkit(parentID entities.InventoryID, stamped map[entities.InventoryID]string) {
	for id, previous := range stamped {
		_, err := s.inventory.UpdateInventory(id, func(item *entities.InventoryItem) error {
			item.KitID = previous
			return nil
		})
		if err != nil {
			s.logger.Warn("rollback of kit member failed",
				zap.String("inventory_id", string(id)),
				zap.Error(err),
			)
		}
	}
	if err := s.inventory.DeleteInventory(parentID); err != nil {
		s.logger.Warn("rollback of kit parent failed",
			zap.String("inventory_id", string(parentID)),
			zap.Error(err),
		)
	}
}

func (s *InventoryService) rollback(created []*entities.InventoryItem) {
	for _, item := range created {
		if err := s.inventory.DeleteInventory(item.ID); err != nil {
			s.logger.Warn("rollback of stocked record failed",
				zap.String("inventory_id", string(item.ID)),
				zap.Error(err),
			)
		}
	}
}
