// Package cache provides the process-lifetime key-value store backing the
// scrape pipeline. Values are namespaced by a coarse cache key and persisted
// as a single gzip-compressed JSON document. The store is loaded once at
// start and flushed once at the end of a run if anything changed.
package cache

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Cache namespaces. The item key within each namespace is the request URL
// that produced the cached value.
const (
	NSUserPage  = "user_page"
	NSVideoPage = "video_page"
	NSEmbedJSON = "embed_json"
)

// DefaultFileName is the on-disk cache blob inside the addon data directory.
const DefaultFileName = "cache.dat.gz"

// ComputeFunc produces the value for a cache miss. Returned values must be
// JSON-marshallable; errors propagate to the caller and nothing is stored.
type ComputeFunc func(itemKey string) (any, error)

// Store is a namespaced in-memory cache shared by all scrape workers.
// All mutation paths are mutex-guarded; compute functions run outside the
// lock so slow network fetches do not serialize the worker pool.
type Store struct {
	mu    sync.Mutex
	pool  map[string]map[string]json.RawMessage
	dirty bool
}

func NewStore() *Store {
	return &Store{pool: make(map[string]map[string]json.RawMessage)}
}

// Load reads the cache blob at path. Any I/O or decode failure yields an
// empty store, never an error: a corrupt cache is a cache miss, not a fault.
func Load(path string) *Store {
	store := NewStore()

	f, err := os.Open(path)
	if err != nil {
		return store
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return store
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return store
	}

	var pool map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &pool); err != nil || pool == nil {
		return store
	}
	store.pool = pool
	return store
}

// GetOrCompute returns the cached value for (cacheKey, itemKey), invoking
// compute on a miss. The computed bool reports whether compute ran. A compute
// error propagates uncached.
func (s *Store) GetOrCompute(cacheKey, itemKey string, compute ComputeFunc) (json.RawMessage, bool, error) {
	s.mu.Lock()
	if ns, ok := s.pool[cacheKey]; ok {
		if value, ok := ns[itemKey]; ok {
			s.mu.Unlock()
			return value, false, nil
		}
	}
	s.mu.Unlock()

	result, err := compute(itemKey)
	if err != nil {
		return nil, true, err
	}
	value, err := json.Marshal(result)
	if err != nil {
		return nil, true, fmt.Errorf("failed to encode cache value for %s/%s: %w", cacheKey, itemKey, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.pool[cacheKey]
	if !ok {
		ns = make(map[string]json.RawMessage)
		s.pool[cacheKey] = ns
	}
	// Another worker may have raced the same item; first write wins.
	if existing, ok := ns[itemKey]; ok {
		return existing, true, nil
	}
	ns[itemKey] = value
	s.dirty = true
	return value, true, nil
}

// Exists reports whether (cacheKey, itemKey) is cached. An absent namespace
// is created empty on the way through; that is namespace bookkeeping, not a
// mutation worth flushing.
func (s *Store) Exists(cacheKey, itemKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.pool[cacheKey]
	if !ok {
		s.pool[cacheKey] = make(map[string]json.RawMessage)
		return false
	}
	_, ok = ns[itemKey]
	return ok
}

// Invalidate resets an entire namespace.
func (s *Store) Invalidate(cacheKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool[cacheKey] = make(map[string]json.RawMessage)
	s.dirty = true
}

// Delete removes one entry, reporting whether it was present.
func (s *Store) Delete(cacheKey, itemKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.pool[cacheKey]
	if !ok {
		return false
	}
	if _, ok := ns[itemKey]; !ok {
		return false
	}
	delete(ns, itemKey)
	s.dirty = true
	return true
}

// Dirty reports whether the store changed since Load.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Flush writes the store to path as gzip-compressed JSON iff it is dirty.
// Flush runs single-threaded after the worker pool has joined.
func (s *Store) Flush(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	data, err := json.Marshal(s.pool)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		f.Close()
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finish cache write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	s.dirty = false
	return nil
}

// Stats returns the entry count per namespace, sorted by namespace name.
func (s *Store) Stats() []NamespaceStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := make([]NamespaceStat, 0, len(s.pool))
	for name, ns := range s.pool {
		stats = append(stats, NamespaceStat{Name: name, Entries: len(ns)})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

type NamespaceStat struct {
	Name    string `json:"namespace"`
	Entries int    `json:"entries"`
}
