package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
	"github.com/vsinha/aim/pkg/infrastructure/events"
	"github.com/vsinha/aim/pkg/infrastructure/logging"
	"github.com/vsinha/aim/pkg/infrastructure/metrics"
)

// CostLedger appends dated cost observations to components
type CostLedger struct {
	components repositories.ComponentRepository
	clock      Clock
	logger     *zap.Logger
	metrics    *metrics.Recorder
	audit      auditTrail
}

// NewCostLedger creates a cost ledger. A nil clock uses the system clock.
func NewCostLedger(
	components repositories.ComponentRepository,
	clock Clock,
	logger *zap.Logger,
	recorder *metrics.Recorder,
) *CostLedger {
	return &CostLedger{
		components: components,
		clock:      orSystemClock(clock),
		logger:     logging.OrNop(logger),
		metrics:    recorder,
	}
}

// RecordCost appends {value, now} to the component's history and moves its
// cost snapshot to value. Both happen inside one atomic store update, so the
// history reflects call order and the snapshot always equals the last entry.
func (l *CostLedger) RecordCost(id entities.ComponentID, value decimal.Decimal) (*entities.Component, error) {
	if value.IsNegative() {
		return nil, &entities.ValidationError{
			Field:  "cost",
			Reason: fmt.Sprintf("must be non-negative, got %s", value.String()),
		}
	}
	start := time.Now()
	defer l.metrics.ObserveDuration("record_cost", start)

	var at time.Time
	updated, err := l.components.UpdateComponent(id, func(c *entities.Component) error {
		at = l.clock.Now()
		c.AppendCost(value, at)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record cost: %w", err)
	}

	l.metrics.RecordCost()
	l.audit.publishAt(events.CostRecordedEvent, events.ComponentStream+string(id),
		events.CostRecorded{ComponentID: id, Value: value}, at)
	l.logger.Info("cost recorded",
		zap.String("component_id", string(id)),
		zap.String("value", value.String()),
		zap.Int("history_length", len(updated.Costs)),
	)
	return updated, nil
}

// CostHistory returns the ordered cost history of a component. An unknown
// component yields an empty history, not an error; callers that must tell
// the two apart check existence first. Only storage failures are returned.
func (l *CostLedger) CostHistory(id entities.ComponentID) ([]entities.CostObservation, error) {
	c, err := l.components.GetComponent(id)
	if err != nil {
		if entities.IsNotFound(err) {
			return []entities.CostObservation{}, nil
		}
		return nil, fmt.Errorf("cost history: %w", err)
	}

	history := make([]entities.CostObservation, len(c.Costs))
	copy(history, c.Costs)
	return history, nil
}
