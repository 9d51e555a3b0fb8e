// Package storage opens the repositories.Store selected by configuration
package storage

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/domain/repositories"
	"github.com/vsinha/aim/pkg/infrastructure/config"
	"github.com/vsinha/aim/pkg/infrastructure/logging"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/sqlite"
)

// Open returns the store for cfg.Driver
func Open(cfg config.StoreConfig, logger *zap.Logger) (repositories.Store, error) {
	logger = logging.OrNop(logger)

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Info("using in-memory store")
		return memory.NewStore(), nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", zap.String("path", cfg.SQLite.Path))
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}
