// Package memory is the default directory backend: the loaded table held in
// a slice, filtered with pure-Go predicates.
package memory

import (
	"context"

	"clubdir/internal/core"
	"clubdir/internal/dataset"
)

type Store struct {
	clubs  []core.Club
	facets core.Facets
}

// New builds a store over a loaded table. The table is copied once; facets
// are precomputed since the data never changes afterwards.
func New(table *dataset.Table) *Store {
	clubs := make([]core.Club, len(table.Clubs))
	copy(clubs, table.Clubs)
	return &Store{clubs: clubs, facets: core.ComputeFacets(clubs)}
}

func (s *Store) List(_ context.Context, f *core.Filter, key core.SortKey, descending bool) ([]core.Club, error) {
	out := f.Apply(s.clubs)
	core.SortClubs(out, key, descending)
	return out, nil
}

func (s *Store) Facets(_ context.Context) (core.Facets, error) {
	return s.facets, nil
}
