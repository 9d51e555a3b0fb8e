package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
	"github.com/vsinha/aim/pkg/infrastructure/events"
	"github.com/vsinha/aim/pkg/infrastructure/logging"
	"github.com/vsinha/aim/pkg/infrastructure/metrics"
)

// BOMVerifier checks whether a hardware revision can be built from current stock
type BOMVerifier struct {
	revisions repositories.HardwareRevisionRepository
	inventory repositories.InventoryRepository
	logger    *zap.Logger
	metrics   *metrics.Recorder
	audit     auditTrail
}

// NewBOMVerifier creates a BOM verifier
func NewBOMVerifier(
	revisions repositories.HardwareRevisionRepository,
	inventory repositories.InventoryRepository,
	logger *zap.Logger,
	recorder *metrics.Recorder,
) *BOMVerifier {
	return &BOMVerifier{
		revisions: revisions,
		inventory: inventory,
		logger:    logging.OrNop(logger),
		metrics:   recorder,
	}
}

// VerifyBuildability returns one shortfall per under-supplied BOM line, in
// line order. Each line is checked independently against the full available
// pool, so a component listed twice is checked twice without netting.
// An empty result means the revision is buildable; an unknown revision
// returns an error wrapping entities.ErrNotFound.
func (v *BOMVerifier) VerifyBuildability(id entities.RevisionID) ([]dto.Shortfall, error) {
	start := time.Now()
	defer v.metrics.ObserveDuration("verify_buildability", start)

	rev, available, err := v.load(id)
	if err != nil {
		return nil, err
	}

	shortfalls := []dto.Shortfall{}
	for _, line := range rev.Components {
		have := available[line.ComponentID]
		if have < line.Quantity {
			shortfalls = append(shortfalls, dto.Shortfall{
				ComponentID: line.ComponentID,
				Required:    line.Quantity,
				Available:   have,
			})
		}
	}

	v.report(rev, "per_line", shortfalls)
	return shortfalls, nil
}

// VerifyAssembly is the stricter check for building one complete unit:
// repeated component ids are summed and compared against a shared pool.
// Shortfalls are returned once per component in order of first appearance.
func (v *BOMVerifier) VerifyAssembly(id entities.RevisionID) ([]dto.Shortfall, error) {
	start := time.Now()
	defer v.metrics.ObserveDuration("verify_assembly", start)

	rev, available, err := v.load(id)
	if err != nil {
		return nil, err
	}

	required := make(map[entities.ComponentID]entities.Quantity)
	var order []entities.ComponentID
	for _, line := range rev.Components {
		if _, seen := required[line.ComponentID]; !seen {
			order = append(order, line.ComponentID)
		}
		required[line.ComponentID] += line.Quantity
	}

	shortfalls := []dto.Shortfall{}
	for _, componentID := range order {
		if have := available[componentID]; have < required[componentID] {
			shortfalls = append(shortfalls, dto.Shortfall{
				ComponentID: componentID,
				Required:    required[componentID],
				Available:   have,
			})
		}
	}

	v.report(rev, "assembly", shortfalls)
	return shortfalls, nil
}

// load fetches the revision and totals available stock from a single
// enumeration of the inventory, so every line sees the same point in time
func (v *BOMVerifier) load(id entities.RevisionID) (*entities.HardwareRevision, map[entities.ComponentID]entities.Quantity, error) {
	rev, err := v.revisions.GetRevision(id)
	if err != nil {
		return nil, nil, fmt.Errorf("verify buildability: %w", err)
	}

	items, err := v.inventory.ListInventory()
	if err != nil {
		return nil, nil, fmt.Errorf("verify buildability: list inventory: %w", err)
	}
	return rev, availableByComponent(items), nil
}

func (v *BOMVerifier) report(rev *entities.HardwareRevision, mode string, shortfalls []dto.Shortfall) {
	v.metrics.RecordVerification(len(shortfalls))
	stream := events.RevisionStream + string(rev.ID)
	if len(shortfalls) == 0 {
		v.audit.publish(events.RevisionBuildableEvent, stream,
			events.RevisionBuildable{RevisionID: rev.ID, Mode: mode})
		v.logger.Info("revision buildable",
			zap.String("revision_id", string(rev.ID)),
			zap.String("mode", mode),
			zap.Int("lines", len(rev.Components)),
		)
		return
	}
	v.audit.publish(events.ShortageIdentifiedEvent, stream,
		events.ShortageIdentified{RevisionID: rev.ID, Mode: mode, Shortfalls: append([]dto.Shortfall(nil), shortfalls...)})
	v.logger.Info("revision short",
		zap.String("revision_id", string(rev.ID)),
		zap.String("mode", mode),
		zap.Int("lines", len(rev.Components)),
		zap.Int("shortfalls", len(shortfalls)),
	)
}
