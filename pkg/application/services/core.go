package services

import (
	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/domain/repositories"
	"github.com/vsinha/aim/pkg/infrastructure/events"
	"github.com/vsinha/aim/pkg/infrastructure/logging"
	"github.com/vsinha/aim/pkg/infrastructure/metrics"
)

// Options configures the services built by NewCore
type Options struct {
	Clock   Clock
	Logger  *zap.Logger
	Metrics *metrics.Recorder
	// Events receives the audit trail of mutations and verifications; nil disables it
	Events events.EventStore
}

// Core wires the reasoning services to one store
type Core struct {
	Store      repositories.Store
	Ledger     *CostLedger
	Allocation *AllocationValidator
	Verifier   *BOMVerifier
	Reports    *ReportingAggregator
	Inventory  *InventoryService
	Integrity  *IntegrityChecker
	Events     events.EventStore
}

// NewCore builds every service against store
func NewCore(store repositories.Store, opts Options) *Core {
	audit := auditTrail{
		store:  opts.Events,
		clock:  orSystemClock(opts.Clock),
		logger: logging.OrNop(opts.Logger),
	}

	ledger := NewCostLedger(store, opts.Clock, opts.Logger, opts.Metrics)
	ledger.audit = audit

	verifier := NewBOMVerifier(store, store, opts.Logger, opts.Metrics)
	verifier.audit = audit

	inventory := NewInventoryService(store, opts.Clock, opts.Logger, opts.Metrics)
	inventory.audit = audit

	return &Core{
		Store:      store,
		Ledger:     ledger,
		Allocation: NewAllocationValidator(store, opts.Logger, opts.Metrics),
		Verifier:   verifier,
		Reports:    NewReportingAggregator(store, ledger),
		Inventory:  inventory,
		Integrity:  NewIntegrityChecker(store, store, store),
		Events:     opts.Events,
	}
}
