package service

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/store"
	"golang.org/x/sync/singleflight"
)

// DefaultStatsTTL is how long a computed stats snapshot stays valid.
const DefaultStatsTTL = 5 * time.Minute

// StatsService provides TTL-cached aggregate statistics over the catalog.
type StatsService interface {
	// Get returns the current stats snapshot, recomputing it when the cached
	// one has expired. Calls within the TTL return the stored snapshot
	// unchanged, including its ComputedAt timestamp.
	Get(ctx context.Context) (model.Stats, error)
	// Invalidate drops the cached snapshot so the next Get recomputes.
	Invalidate()
}

// statsCache holds one stats snapshot valid for a fixed window.
type statsCache struct {
	mu       sync.RWMutex
	snapshot model.Stats
	valid    bool
	ttl      time.Duration
}

// get returns the cached snapshot if it is still within the TTL.
func (c *statsCache) get() (model.Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || time.Since(c.snapshot.ComputedAt) >= c.ttl {
		return model.Stats{}, false
	}
	return c.snapshot, true
}

// set replaces the cached snapshot.
func (c *statsCache) set(s model.Stats) {
	c.mu.Lock()
	c.snapshot = s
	c.valid = true
	c.mu.Unlock()
}

// invalidate clears the cached snapshot.
func (c *statsCache) invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// statsService implements StatsService over an ItemStore.
type statsService struct {
	store store.ItemStore
	cache *statsCache
	group singleflight.Group
	now   func() time.Time
}

// StatsOption configures a stats service.
type StatsOption func(*statsService)

// WithStatsTTL overrides the default snapshot TTL.
func WithStatsTTL(ttl time.Duration) StatsOption {
	return func(s *statsService) { s.cache.ttl = ttl }
}

// NewStatsService creates a stats service backed by the given store.
func NewStatsService(itemStore store.ItemStore, opts ...StatsOption) StatsService {
	s := &statsService{
		store: itemStore,
		cache: &statsCache{ttl: DefaultStatsTTL},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached snapshot when valid; otherwise it recomputes.
// Concurrent recomputations collapse into a single pass over the catalog.
func (s *statsService) Get(ctx context.Context) (model.Stats, error) {
	if snapshot, ok := s.cache.get(); ok {
		metrics.RecordStatsRequest("cache")
		return snapshot, nil
	}

	result, err, _ := s.group.Do("stats", func() (interface{}, error) {
		// A queued caller may find the cache repopulated already.
		if snapshot, ok := s.cache.get(); ok {
			return snapshot, nil
		}

		records, err := s.store.Load(ctx)
		if err != nil {
			return model.Stats{}, err
		}

		snapshot := computeStats(records, s.now())
		s.cache.set(snapshot)
		metrics.RecordStatsRequest("recompute")
		return snapshot, nil
	})
	if err != nil {
		return model.Stats{}, err
	}

	snapshot, _ := result.(model.Stats)
	return snapshot, nil
}

// Invalidate drops the cached snapshot.
func (s *statsService) Invalidate() {
	s.cache.invalidate()
}

// computeStats aggregates count and mean price over the full record set.
// The mean of an empty catalog is 0, never a division error.
func computeStats(records []model.Item, computedAt time.Time) model.Stats {
	stats := model.Stats{
		Total:      len(records),
		ComputedAt: computedAt,
	}
	if len(records) == 0 {
		return stats
	}

	var sum float64
	for _, item := range records {
		sum += item.Price
	}
	stats.AveragePrice = sum / float64(len(records))
	return stats
}
