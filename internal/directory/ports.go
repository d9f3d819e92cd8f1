// Package directory defines the read-only ports the UI consumes and the
// factory that builds a backend from configuration.
package directory

import (
	"context"

	"clubdir/internal/core"
)

// Provider serves filtered views over the loaded club table. Implementations
// never mutate the table; every call returns fresh slices the caller owns.
type Provider interface {
	// List returns the clubs matching the filter, sorted by key.
	List(ctx context.Context, f *core.Filter, key core.SortKey, descending bool) ([]core.Club, error)

	// Facets returns the distinct filter options and observed money bounds.
	Facets(ctx context.Context) (core.Facets, error)
}

// CleanupFunc releases backend resources (database handles and the like).
type CleanupFunc func() error
