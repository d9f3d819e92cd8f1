package dataset

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// Cache keeps the loaded table for the lifetime of the process, keyed by the
// source file's modification time so an unchanged file is never re-read.
// There are no writers after load, so a cached *Table is safe for concurrent
// read-only use by every request.
type Cache struct {
	mu      sync.Mutex
	path    string
	modTime time.Time
	table   *Table
	err     error
	loaded  bool

	// loadFn is swappable for tests; defaults to Load.
	loadFn func(path string) (*Table, error)
	statFn func(path string) (time.Time, error)
}

// NewCache creates a cache bound to a dataset path.
func NewCache(path string) *Cache {
	return &Cache{
		path:   path,
		loadFn: Load,
		statFn: statModTime,
	}
}

// Get returns the cached table, loading it on first use or when the file's
// modification time has changed since the last load. Load errors are cached
// too, so a missing file does not hammer the filesystem on every request.
func (c *Cache) Get() (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mod, statErr := c.statFn(c.path)
	if c.loaded && statErr == nil && mod.Equal(c.modTime) {
		return c.table, c.err
	}
	if c.loaded && statErr != nil && c.err != nil {
		// File was and still is unreadable; keep the cached error.
		return nil, c.err
	}

	table, err := c.loadFn(c.path)
	c.table, c.err, c.loaded = table, err, true
	c.modTime = mod
	if err == nil {
		slog.Info("Dataset loaded", "path", c.path, "clubs", len(table.Clubs), "skipped", table.Skipped)
	}
	return table, err
}

// Invalidate clears the cache so the next Get re-reads the file.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table, c.err, c.loaded = nil, nil, false
	c.modTime = time.Time{}
}

// Path returns the dataset path the cache is bound to.
func (c *Cache) Path() string {
	return c.path
}

func statModTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}
