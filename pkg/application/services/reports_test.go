package services

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/memory"
)

func TestReportingAggregator_FailureRateReport(t *testing.T) {
	core, store := newTestCore(t)
	cpu := mustComponent(t, store, "CPU", func(c *entities.Component) { c.FailureRate = 0.06 })
	edge := mustComponent(t, store, "PSU", func(c *entities.Component) { c.FailureRate = 0.05 })
	mustComponent(t, store, "RAM", func(c *entities.Component) { c.FailureRate = 0.01 })

	rows, err := core.Reports.FailureRateReport(DefaultFailureRateThreshold)
	require.NoError(t, err)
	assert.Equal(t, []dto.FailureRateRow{
		{ComponentID: cpu, FailureRate: 0.06},
		{ComponentID: edge, FailureRate: 0.05},
	}, rows)

	rows, err = core.Reports.FailureRateReport(0.5)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestReportingAggregator_FailureRateReportRejectsBadThreshold(t *testing.T) {
	core, _ := newTestCore(t)

	for _, threshold := range []float64{-0.1, math.NaN()} {
		_, err := core.Reports.FailureRateReport(threshold)
		assert.True(t, entities.IsValidation(err), "threshold %v", threshold)
	}
}

func TestReportingAggregator_FailureRateReportSelectsExactlyAtOrAbove(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := memory.NewStore()
		reports := NewReportingAggregator(store, NewCostLedger(store, nil, nil, nil))

		rates := rapid.SliceOfN(rapid.Float64Range(0, 1), 0, 20).Draw(t, "rates")
		for _, rate := range rates {
			if _, err := store.InsertComponent(&entities.Component{VendorName: "V", ManufacturerName: "M", FailureRate: rate}); err != nil {
				t.Fatalf("insert: %v", err)
			}
		}
		threshold := rapid.Float64Range(0, 1).Draw(t, "threshold")

		rows, err := reports.FailureRateReport(threshold)
		if err != nil {
			t.Fatalf("report: %v", err)
		}

		var expected []float64
		for _, rate := range rates {
			if rate >= threshold {
				expected = append(expected, rate)
			}
		}
		if len(rows) != len(expected) {
			t.Fatalf("expected %d rows at threshold %g, got %d", len(expected), threshold, len(rows))
		}
		for i, row := range rows {
			if row.FailureRate != expected[i] {
				t.Fatalf("row %d: expected rate %g, got %g", i, expected[i], row.FailureRate)
			}
		}
	})
}

func TestReportingAggregator_LeadTimeReport(t *testing.T) {
	core, store := newTestCore(t)

	empty, err := core.Reports.LeadTimeReport()
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	cpu := mustComponent(t, store, "CPU", func(c *entities.Component) {
		c.EstimatedLeadTime = "4 weeks"
		c.ActualLeadTime = 35
	})
	ram := mustComponent(t, store, "RAM")

	rows, err := core.Reports.LeadTimeReport()
	require.NoError(t, err)
	assert.Equal(t, []dto.LeadTimeRow{
		{ComponentID: cpu, EstimatedLeadTime: "4 weeks", ActualLeadTime: 35},
		{ComponentID: ram, EstimatedLeadTime: "", ActualLeadTime: 0},
	}, rows)
}

func TestReportingAggregator_CostHistoryReport(t *testing.T) {
	core, store := newTestCore(t)
	ram := mustComponent(t, store, "RAM")

	_, err := core.Ledger.RecordCost(ram, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	_, err = core.Ledger.RecordCost(ram, decimal.RequireFromString("150.00"))
	require.NoError(t, err)

	points, err := core.Reports.CostHistoryReport(ram)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "100", points[0].Value.String())
	assert.Equal(t, "150", points[1].Value.String())
	assert.True(t, points[0].Date.Before(points[1].Date))

	missing, err := core.Reports.CostHistoryReport("missing")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestReportingAggregator_NilLedgerUsesComponents(t *testing.T) {
	store := memory.NewStore()
	cpu := mustComponent(t, store, "CPU")
	_, err := store.UpdateComponent(cpu, func(c *entities.Component) error {
		c.AppendCost(decimal.NewFromInt(42), newStepClock().Now())
		return nil
	})
	require.NoError(t, err)

	reports := NewReportingAggregator(store, nil)
	points, err := reports.CostHistoryReport(cpu)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(42)))

	empty, err := reports.CostHistoryReport("missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
