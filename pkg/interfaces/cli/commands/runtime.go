package commands

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/application/services"
	"github.com/vsinha/aim/pkg/domain/repositories"
	"github.com/vsinha/aim/pkg/infrastructure/config"
	"github.com/vsinha/aim/pkg/infrastructure/events"
	"github.com/vsinha/aim/pkg/infrastructure/logging"
	"github.com/vsinha/aim/pkg/infrastructure/metrics"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/aim/pkg/infrastructure/storage"
)

// runtime holds everything a command needs once configuration is resolved
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	store    repositories.Store
	core     *services.Core
}

// bootstrap loads configuration, opens the store, seeds it from scenarioDir
// (or the configured seed directory) and wires the core services
func bootstrap(configPath, scenarioDir string, verbose bool) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	recorder, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	store, err := storage.Open(cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if scenarioDir == "" {
		scenarioDir = cfg.Seed.ScenarioDir
	}
	if scenarioDir != "" {
		summary, err := csv.NewLoader().LoadScenario(scenarioDir, store)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("load scenario %s: %w", scenarioDir, err)
		}
		logger.Info("scenario loaded",
			zap.String("dir", scenarioDir),
			zap.Int("components", summary.Components),
			zap.Int("inventory", summary.Inventory),
			zap.Int("revisions", summary.Revisions),
			zap.Int("skipped", summary.Skipped),
		)
	}

	audit, err := newAuditLog(logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	core := services.NewCore(store, services.Options{
		Logger:  logger,
		Metrics: recorder,
		Events:  audit,
	})
	return &runtime{cfg: cfg, logger: logger, registry: registry, store: store, core: core}, nil
}

// newAuditLog builds the event store and attaches its subscribers
func newAuditLog(logger *zap.Logger) (*events.InMemoryEventStore, error) {
	audit := events.NewInMemoryEventStore(logger)
	if err := events.NewShortageLogger(logger).Register(audit); err != nil {
		return nil, fmt.Errorf("subscribe shortage logger: %w", err)
	}
	return audit, nil
}

func (rt *runtime) close() {
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("closing store failed", zap.Error(err))
	}
	rt.logger.Sync()
}
