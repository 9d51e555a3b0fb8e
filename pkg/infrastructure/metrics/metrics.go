// Package metrics provides Prometheus metrics for the inventory reasoning layer
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the collectors for one registry. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	costObservations   prometheus.Counter
	bomVerifications   *prometheus.CounterVec
	shortfallLines     prometheus.Counter
	allocationChecks   *prometheus.CounterVec
	inventoryStocked   prometheus.Counter
	operationDurations *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with reg
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		costObservations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aim_cost_observations_total",
			Help: "Total number of cost observations recorded",
		}),
		bomVerifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aim_bom_verifications_total",
				Help: "Total number of buildability checks by outcome",
			},
			[]string{"result"},
		),
		shortfallLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aim_shortfall_lines_total",
			Help: "Total number of BOM lines reported short",
		}),
		allocationChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aim_allocation_checks_total",
				Help: "Total number of allocation checks by outcome",
			},
			[]string{"result"},
		),
		inventoryStocked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aim_inventory_records_stocked_total",
			Help: "Total number of inventory records created by stocking events",
		}),
		operationDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aim_operation_duration_seconds",
				Help:    "Duration of core operations",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),
	}

	collectors := []prometheus.Collector{
		r.costObservations,
		r.bomVerifications,
		r.shortfallLines,
		r.allocationChecks,
		r.inventoryStocked,
		r.operationDurations,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RecordCost counts one cost observation
func (r *Recorder) RecordCost() {
	if r == nil {
		return
	}
	r.costObservations.Inc()
}

// RecordVerification counts a buildability check and its short lines
func (r *Recorder) RecordVerification(shortfalls int) {
	if r == nil {
		return
	}
	result := "buildable"
	if shortfalls > 0 {
		result = "short"
	}
	r.bomVerifications.WithLabelValues(result).Inc()
	r.shortfallLines.Add(float64(shortfalls))
}

// RecordAllocationCheck counts an allocation check by outcome
func (r *Recorder) RecordAllocationCheck(sufficient bool) {
	if r == nil {
		return
	}
	result := "insufficient"
	if sufficient {
		result = "sufficient"
	}
	r.allocationChecks.WithLabelValues(result).Inc()
}

// RecordStocked counts inventory records created by a stocking event
func (r *Recorder) RecordStocked(records int) {
	if r == nil {
		return
	}
	r.inventoryStocked.Add(float64(records))
}

// ObserveDuration records how long an operation took since start
func (r *Recorder) ObserveDuration(operation string, start time.Time) {
	if r == nil {
		return
	}
	r.operationDurations.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
