// Package repository picks the storage adapter named by DATABASE_URL.
package repository

import (
	"fmt"

	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository/postgres"
	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/visit-tracker/pkg/config"
	"github.com/wadjakorntonsri/visit-tracker/pkg/logging"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

// Open connects to and migrates the configured storage.
func Open(cfg *config.Config) (ports.Repository, error) {
	kind := cfg.Storage()
	logging.Info().Str("storage", kind).Msg("opening storage")

	switch kind {
	case config.StorageMemory:
		return memory.NewMemoryRepository(), nil
	case config.StoragePostgres:
		repo, err := postgres.NewPostgresRepository(cfg.DatabaseURL, cfg.DBMaxOpenConns)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return repo, nil
	default:
		// sqlite and libsql share one adapter.
		repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", kind, err)
		}
		return repo, nil
	}
}
