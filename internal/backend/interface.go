// Package backend selects and constructs the configured rate store.
package backend

import (
	"context"

	"inflation/internal/rates"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the constructed store and an optional cleanup function.
type Result struct {
	Store   rates.Store
	Cleanup CleanupFunc
}

// Factory creates rate stores based on configuration.
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// Config holds what the factory needs to build any backend type.
type Config struct {
	Type Type

	// CSV specific
	CSVPath string

	// SQLite specific
	SQLiteDBPath string
}

// Type identifies a rate-store backend.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
