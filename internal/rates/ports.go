package rates

import (
	"context"
)

// Ports for rate-table sources.
type (
	// Store provides immutable snapshots of the inflation-rate table.
	Store interface {
		// Load builds a fresh table from the source and publishes it
		// atomically. In-flight readers keep the snapshot they hold.
		Load(ctx context.Context) error

		// Snapshot returns the current table, loading it on first access.
		Snapshot(ctx context.Context) (*Table, error)
	}
)
