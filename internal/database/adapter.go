package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/saltseed/internal/database/common"
)

const LoadsTable = common.LoadsTable

type (
	Load    = common.Load
	Fixture = common.Fixture
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Loads table management
	EnsureLoadsTable(ctx context.Context) error
	LoadedFiles(ctx context.Context) (map[string]Load, error)
	// RecordLoad records name as loaded without running anything.
	RecordLoad(ctx context.Context, name, checksum string) error

	// ExecuteScript runs every statement of script in one transaction.
	ExecuteScript(ctx context.Context, script string) error
	// ExecuteAndRecordLoad runs the fixture script, after clearing its
	// table when Replace is set, and records the load in the same
	// transaction.
	ExecuteAndRecordLoad(ctx context.Context, f Fixture) error

	TableRowCount(ctx context.Context, table string) (int, error)
}
