package core

import (
	"fmt"
	"os"

	"plancore/internal/infra/persistence/memory"
	"plancore/internal/infra/persistence/postgres"
	"plancore/internal/infra/persistence/sqlite"
	"plancore/pkg/domain"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

type (
	Transaction     = domain.Transaction
	TransactionView = domain.TransactionView
	PersistentStore = domain.PersistentStore
)

// OpenPersistentStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	PLANCORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	PLANCORE_SQLITE_PATH: path to sqlite file (default ./plancore.db)
//	PLANCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStore(engine *RulesEngine, ref ReferenceData) (PersistentStore, error) {
	driver := os.Getenv("PLANCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(engine, ref), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("PLANCORE_SQLITE_PATH"), engine, ref)
	case StoragePostgres:
		return postgres.NewStore(os.Getenv("PLANCORE_POSTGRES_DSN"), engine, ref)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// NewInMemoryService creates a service over a fresh in-memory store.
func NewInMemoryService(engine *RulesEngine, ref ReferenceData, opts ...ServiceOption) *Service {
	return NewService(memory.NewStore(engine, ref), engine, ref, opts...)
}
