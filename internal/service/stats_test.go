package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricedItems(prices ...float64) []model.Item {
	items := make([]model.Item, len(prices))
	for i, p := range prices {
		items[i] = model.Item{ID: string(rune('a' + i)), Name: "item", Price: p}
	}
	return items
}

func TestGetStats(t *testing.T) {
	stats := NewStatsService(&fakeStore{items: pricedItems(10, 20, 30)})

	snapshot, err := stats.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.Total)
	assert.Equal(t, 20.0, snapshot.AveragePrice)
	assert.False(t, snapshot.ComputedAt.IsZero())
}

func TestGetStatsEmptyCatalog(t *testing.T) {
	stats := NewStatsService(&fakeStore{})

	snapshot, err := stats.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.Total)
	assert.Equal(t, 0.0, snapshot.AveragePrice)
}

func TestGetStatsCachedWithinTTL(t *testing.T) {
	fs := &fakeStore{items: pricedItems(10, 20, 30)}
	stats := NewStatsService(fs, WithStatsTTL(time.Hour))

	first, err := stats.Get(context.Background())
	require.NoError(t, err)

	second, err := stats.Get(context.Background())
	require.NoError(t, err)

	// Calls within the TTL return the stored snapshot unchanged,
	// including the computation timestamp.
	assert.Equal(t, first.ComputedAt, second.ComputedAt)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fs.loads)
}

func TestGetStatsRecomputesAfterTTL(t *testing.T) {
	fs := &fakeStore{items: pricedItems(10, 20, 30)}
	stats := NewStatsService(fs, WithStatsTTL(20*time.Millisecond))

	first, err := stats.Get(context.Background())
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	second, err := stats.Get(context.Background())
	require.NoError(t, err)

	assert.True(t, second.ComputedAt.After(first.ComputedAt))
	assert.Equal(t, 2, fs.loads)
}

func TestGetStatsInvalidate(t *testing.T) {
	fs := &fakeStore{items: pricedItems(10, 20)}
	stats := NewStatsService(fs, WithStatsTTL(time.Hour))

	first, err := stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15.0, first.AveragePrice)

	fs.items = pricedItems(10, 20, 60)
	stats.Invalidate()

	second, err := stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, second.Total)
	assert.Equal(t, 30.0, second.AveragePrice)
}

func TestGetStatsStoreError(t *testing.T) {
	stats := NewStatsService(&fakeStore{loadErr: store.ErrDataUnavailable})

	_, err := stats.Get(context.Background())

	assert.True(t, errors.Is(err, store.ErrDataUnavailable))
}

func TestGetStatsErrorIsNotCached(t *testing.T) {
	fs := &fakeStore{loadErr: store.ErrDataUnavailable}
	stats := NewStatsService(fs, WithStatsTTL(time.Hour))

	_, err := stats.Get(context.Background())
	require.Error(t, err)

	fs.loadErr = nil
	fs.items = pricedItems(10)

	snapshot, err := stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Total)
}

func TestGetStatsConcurrent(t *testing.T) {
	fs := &fakeStore{items: pricedItems(10, 20, 30)}
	stats := NewStatsService(fs, WithStatsTTL(time.Hour))

	var wg sync.WaitGroup
	results := make([]model.Stats, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshot, err := stats.Get(context.Background())
			assert.NoError(t, err)
			results[i] = snapshot
		}(i)
	}
	wg.Wait()

	for _, snapshot := range results {
		assert.Equal(t, 3, snapshot.Total)
		assert.Equal(t, 20.0, snapshot.AveragePrice)
	}
}

func TestComputeStatsScenario(t *testing.T) {
	now := time.Now()
	snapshot := computeStats(pricedItems(10, 20, 30), now)

	assert.Equal(t, model.Stats{Total: 3, AveragePrice: 20, ComputedAt: now}, snapshot)
}
