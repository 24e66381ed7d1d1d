// Package store provides access to the catalog's backing JSON file.
//
// The file holds a single JSON array of items. The full array is parsed
// once and cached in process memory; reads return the cached slice until a
// write or a file change invalidates it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrDataUnavailable is returned when the backing file is missing or malformed.
// It is propagated to the caller, never retried.
var ErrDataUnavailable = errors.New("catalog data unavailable")

// ItemStore defines read and write access to the catalog records.
type ItemStore interface {
	// Load returns the full ordered item slice. The returned slice is shared;
	// callers must not mutate it.
	Load(ctx context.Context) ([]model.Item, error)
	// Insert appends an item and persists the catalog.
	Insert(ctx context.Context, item model.Item) error
	// Invalidate drops the in-memory cache so the next Load re-reads the file.
	Invalidate()
	// Ping reports whether the backing file is currently readable.
	Ping() error
}

// Option configures a JSONFileStore.
type Option func(*JSONFileStore)

// WithCreateIfMissing seeds an empty catalog file when none exists.
func WithCreateIfMissing() Option {
	return func(s *JSONFileStore) { s.createIfMissing = true }
}

// WithReloadOnChange re-reads the file when its modification time changes.
func WithReloadOnChange(enabled bool) Option {
	return func(s *JSONFileStore) { s.reloadOnChange = enabled }
}

// JSONFileStore implements ItemStore on top of a flat JSON file.
type JSONFileStore struct {
	path            string
	createIfMissing bool
	reloadOnChange  bool

	mu       sync.RWMutex
	items    []model.Item
	loaded   bool
	loadedAt time.Time
	modTime  time.Time

	group singleflight.Group
}

// NewJSONFileStore creates a store backed by the JSON file at path.
func NewJSONFileStore(path string, opts ...Option) *JSONFileStore {
	s := &JSONFileStore{
		path:           path,
		reloadOnChange: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the cached item slice, reading the file on first use or after
// invalidation. Concurrent cold loads are collapsed into a single disk read.
func (s *JSONFileStore) Load(ctx context.Context) ([]model.Item, error) {
	if items, ok := s.cached(); ok {
		metrics.RecordStoreLoad("cache")
		return items, nil
	}

	result, err, _ := s.group.Do("load", func() (interface{}, error) {
		// Another caller may have completed the load while this one queued.
		if items, ok := s.cached(); ok {
			return items, nil
		}
		return s.readFile()
	})
	if err != nil {
		metrics.RecordStoreLoad("error")
		return nil, err
	}

	metrics.RecordStoreLoad("disk")
	items, _ := result.([]model.Item)
	return items, nil
}

// cached returns the in-memory slice if it is still valid.
func (s *JSONFileStore) cached() ([]model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, false
	}
	if s.reloadOnChange && s.fileChangedLocked() {
		return nil, false
	}
	return s.items, true
}

// fileChangedLocked reports whether the file's mtime differs from the cached
// load. Stat failures count as a change so the next Load surfaces the error.
func (s *JSONFileStore) fileChangedLocked() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		return true
	}
	return !info.ModTime().Equal(s.modTime)
}

// readFile reads and parses the backing file, replacing the cache.
func (s *JSONFileStore) readFile() ([]model.Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) && s.createIfMissing {
			if seedErr := s.seedEmpty(); seedErr == nil {
				data = []byte("[]")
			} else {
				return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, seedErr)
			}
		} else {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrDataUnavailable, s.path, err)
	}

	info, statErr := os.Stat(s.path)

	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.loadedAt = time.Now()
	if statErr == nil {
		s.modTime = info.ModTime()
	}
	s.mu.Unlock()

	log.Debug().Str("path", s.path).Int("items", len(items)).Msg("Catalog loaded from disk")
	return items, nil
}

// seedEmpty writes an empty catalog array to the configured path.
func (s *JSONFileStore) seedEmpty() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	log.Info().Str("path", s.path).Msg("Seeding empty catalog file")
	return s.writeFile([]model.Item{})
}

// Insert appends an item, persists the full array atomically, and refreshes
// the in-memory cache. The write is serialized under the store lock.
func (s *JSONFileStore) Insert(ctx context.Context, item model.Item) error {
	current, err := s.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.items
	if !s.loaded {
		base = current
	}
	updated := make([]model.Item, 0, len(base)+1)
	updated = append(updated, base...)
	updated = append(updated, item)

	if err := s.writeFile(updated); err != nil {
		return fmt.Errorf("%w: persist %s: %v", ErrDataUnavailable, s.path, err)
	}

	s.items = updated
	s.loaded = true
	s.loadedAt = time.Now()
	if info, statErr := os.Stat(s.path); statErr == nil {
		s.modTime = info.ModTime()
	}

	metrics.RecordStoreWrite("success")
	return nil
}

// writeFile persists items via a temp file and rename so readers never
// observe a partially written catalog.
func (s *JSONFileStore) writeFile(items []model.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".items-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}

// Invalidate drops the in-memory cache.
func (s *JSONFileStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.items = nil
	s.mu.Unlock()
}

// Ping reports whether the backing file is readable. Used by the readiness
// probe. A store configured with CreateIfMissing is ready even before the
// file exists.
func (s *JSONFileStore) Ping() error {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) && s.createIfMissing {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return nil
}
