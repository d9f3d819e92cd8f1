package directory

import (
	"context"
	"fmt"
	"sync"

	"clubdir/internal/dataset"
	"clubdir/internal/directory/memory"
	"clubdir/internal/directory/sheets"
	"clubdir/internal/directory/sqlite"
)

// BackendType selects how the loaded table is served.
type BackendType string

const (
	// MemoryBackend filters the CSV table with in-process predicates.
	MemoryBackend BackendType = "memory"
	// SQLiteBackend loads the CSV table into in-memory SQLite.
	SQLiteBackend BackendType = "sqlite"
	// SheetsBackend sources the table from a Google Spreadsheet.
	SheetsBackend BackendType = "sheets"
)

func (bt BackendType) String() string { return string(bt) }

// IsValid returns true if the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}

// Source yields the current Provider. Implementations cache aggressively:
// the dataset is immutable for the life of the process, so a Provider is
// built once and only replaced when the underlying file changes on disk.
//
// Provider errors are returned to the caller rather than tearing the process
// down; the HTTP layer turns them into a friendly empty state.
type Source interface {
	Provider(ctx context.Context) (Provider, error)
}

// Result bundles a source with its resource cleanup.
type Result struct {
	Source  Source
	Cleanup CleanupFunc
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type     BackendType
	DataFile string
}

// Create builds the configured backend source.
func Create(cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %q", cfg.Type)
	}

	switch cfg.Type {
	case SheetsBackend:
		src := &sheetsSource{}
		return &Result{Source: src, Cleanup: func() error { return nil }}, nil
	case SQLiteBackend:
		src := &fileSource{
			cache: dataset.NewCache(cfg.DataFile),
			build: buildSQLite,
		}
		return &Result{Source: src, Cleanup: src.close}, nil
	default:
		src := &fileSource{
			cache: dataset.NewCache(cfg.DataFile),
			build: buildMemory,
		}
		return &Result{Source: src, Cleanup: src.close}, nil
	}
}

func buildMemory(_ context.Context, table *dataset.Table) (Provider, CleanupFunc, error) {
	return memory.New(table), nil, nil
}

func buildSQLite(ctx context.Context, table *dataset.Table) (Provider, CleanupFunc, error) {
	store, err := sqlite.New(ctx, table)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// fileSource serves providers built from the CSV dataset cache. The provider
// is rebuilt only when the cache hands back a different table, which happens
// when the file's modification time changes.
type fileSource struct {
	cache *dataset.Cache
	build func(ctx context.Context, table *dataset.Table) (Provider, CleanupFunc, error)

	mu       sync.Mutex
	table    *dataset.Table
	provider Provider
	cleanup  CleanupFunc
}

func (s *fileSource) Provider(ctx context.Context) (Provider, error) {
	table, err := s.cache.Get()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provider != nil && table == s.table {
		return s.provider, nil
	}

	provider, cleanup, err := s.build(ctx, table)
	if err != nil {
		return nil, err
	}
	if s.cleanup != nil {
		_ = s.cleanup()
	}
	s.table, s.provider, s.cleanup = table, provider, cleanup
	return provider, nil
}

func (s *fileSource) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cleanup != nil {
		err := s.cleanup()
		s.cleanup = nil
		return err
	}
	return nil
}

// sheetsSource fetches the table from Google Sheets once and serves a memory
// provider over it for the rest of the process lifetime. Fetch failures are
// retried on the next request instead of being cached.
type sheetsSource struct {
	mu       sync.Mutex
	client   *sheets.Client
	provider Provider
}

func (s *sheetsSource) Provider(ctx context.Context) (Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provider != nil {
		return s.provider, nil
	}

	if s.client == nil {
		client, err := sheets.NewFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		s.client = client
	}
	table, err := s.client.FetchTable(ctx)
	if err != nil {
		return nil, err
	}
	s.provider = memory.New(table)
	return s.provider, nil
}
