package services

import (
	"fmt"
	"math"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// DefaultFailureRateThreshold is used when a caller does not pick a threshold
const DefaultFailureRateThreshold = 0.05

// ReportingAggregator produces independent read-only projections over the store.
// No state is kept between calls.
type ReportingAggregator struct {
	components repositories.ComponentRepository
	ledger     *CostLedger
}

// NewReportingAggregator creates a reporting aggregator. A nil ledger gets
// one built over components.
func NewReportingAggregator(components repositories.ComponentRepository, ledger *CostLedger) *ReportingAggregator {
	if ledger == nil {
		ledger = NewCostLedger(components, nil, nil, nil)
	}
	return &ReportingAggregator{
		components: components,
		ledger:     ledger,
	}
}

// LeadTimeReport lists estimated and actual lead time for every component in
// store order. No comparison is made; that is left to the consumer.
func (r *ReportingAggregator) LeadTimeReport() ([]dto.LeadTimeRow, error) {
	components, err := r.components.ListComponents()
	if err != nil {
		return nil, fmt.Errorf("lead time report: %w", err)
	}

	rows := make([]dto.LeadTimeRow, 0, len(components))
	for _, c := range components {
		rows = append(rows, dto.LeadTimeRow{
			ComponentID:       c.ID,
			EstimatedLeadTime: c.EstimatedLeadTime,
			ActualLeadTime:    c.ActualLeadTime,
		})
	}
	return rows, nil
}

// FailureRateReport lists components whose failure rate is at or above threshold
func (r *ReportingAggregator) FailureRateReport(threshold float64) ([]dto.FailureRateRow, error) {
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, &entities.ValidationError{
			Field:  "threshold",
			Reason: fmt.Sprintf("must be a non-negative number, got %g", threshold),
		}
	}

	components, err := r.components.ListComponents()
	if err != nil {
		return nil, fmt.Errorf("failure rate report: %w", err)
	}

	rows := []dto.FailureRateRow{}
	for _, c := range components {
		if c.FailureRate >= threshold {
			rows = append(rows, dto.FailureRateRow{ComponentID: c.ID, FailureRate: c.FailureRate})
		}
	}
	return rows, nil
}

// CostHistoryReport flattens one component's cost history for presentation.
// Unknown components yield an empty report.
func (r *ReportingAggregator) CostHistoryReport(id entities.ComponentID) ([]dto.CostPoint, error) {
	history, err := r.ledger.CostHistory(id)
	if err != nil {
		return nil, err
	}

	points := make([]dto.CostPoint, 0, len(history))
	for _, obs := range history {
		points = append(points, dto.CostPoint{Value: obs.Value, Date: obs.Date})
	}
	return points, nil
}
