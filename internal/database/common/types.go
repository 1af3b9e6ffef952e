package common

import "time"

// LoadsTable records which fixture files were applied to a database.
const LoadsTable = "_saltseed_loads"

// Load is one row of the loads table.
type Load struct {
	Name     string
	Checksum string
	LoadedAt time.Time
}

// Fixture is one decompressed fixture file ready to be applied.
type Fixture struct {
	Name     string
	Checksum string
	Table    string
	Script   string
	// Replace clears Table before the script runs.
	Replace bool
}
