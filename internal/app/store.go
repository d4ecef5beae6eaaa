package app

import (
	"context"
	"fmt"

	"pet-adoption-shelter/internal/adapters/storage/memory"
	"pet-adoption-shelter/internal/adapters/storage/postgres"
	"pet-adoption-shelter/internal/adapters/storage/sqlite"
	"pet-adoption-shelter/internal/config"
	"pet-adoption-shelter/internal/ports/storage"
)

// OpenStore elige el adapter según storage.driver.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverSQLite:
		s, err := sqlite.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgres.NewStore(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
