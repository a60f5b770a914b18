// Package blob re-exports the artifact store abstractions and selects a
// backend driver from the environment.
package blob

import (
	"context"
	"fmt"
	"os"

	"plancore/internal/blob/core"
	fsstore "plancore/internal/infra/blob/fs"
	memorystore "plancore/internal/infra/blob/memory"
	s3store "plancore/internal/infra/blob/s3"
)

type (
	// Driver identifies an artifact store backend driver.
	Driver = core.Driver
	// PutOptions configures an artifact write.
	PutOptions = core.PutOptions
	// SignedURLOptions configures URL pre-signing.
	SignedURLOptions = core.SignedURLOptions
	// Info describes stored artifact metadata.
	Info = core.Info
	// Store is the interface artifact store backends implement.
	Store = core.Store
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

// ErrUnsupported indicates an operation a driver does not support.
var ErrUnsupported = core.ErrUnsupported

// Open selects a Store implementation from environment variables.
//
//	PLANCORE_BLOB_DRIVER:  fs|s3|memory (default fs)
//	PLANCORE_BLOB_FS_ROOT: directory root when driver=fs (default ./artifacts)
//	(S3 variables documented in the s3 driver package.)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("PLANCORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("PLANCORE_BLOB_FS_ROOT"))
	case DriverS3:
		return s3store.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// NewFilesystem constructs a filesystem-backed Store rooted at path.
func NewFilesystem(root string) (Store, error) {
	return fsstore.New(root)
}

// NewMemory returns an in-memory Store suitable for tests.
func NewMemory() Store { return memorystore.New() }

// NewS3 constructs an S3-backed Store from explicit configuration.
func NewS3(ctx context.Context, cfg s3store.Config) (Store, error) {
	return s3store.New(ctx, cfg)
}

// NewMockS3ForTests exposes the in-memory S3 mock for cross-package tests.
func NewMockS3ForTests() Store { return s3store.NewMockForTests() }
