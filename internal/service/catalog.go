// Package service contains the business logic for the catalog service.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/store"
)

// ErrNotFound is returned when no item matches the requested id.
var ErrNotFound = errors.New("item not found")

// CatalogService provides item read and write operations.
type CatalogService interface {
	// Find returns one page of the optionally filtered catalog.
	Find(ctx context.Context, query dto.ListItemsQuery) (model.Page, error)
	// FindByID returns the item with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (model.Item, error)
	// Create validates and inserts a new item, returning the stored record.
	Create(ctx context.Context, req dto.CreateItemRequest) (model.Item, error)
}

// catalogService implements CatalogService over an ItemStore.
type catalogService struct {
	store   store.ItemStore
	onWrite func()
}

// CatalogOption configures a catalog service.
type CatalogOption func(*catalogService)

// WithWriteHook registers a callback invoked after every successful insert.
// Used to invalidate dependent caches such as the stats snapshot.
func WithWriteHook(hook func()) CatalogOption {
	return func(s *catalogService) { s.onWrite = hook }
}

// NewCatalogService creates a catalog service backed by the given store.
func NewCatalogService(itemStore store.ItemStore, opts ...CatalogOption) CatalogService {
	s := &catalogService{store: itemStore}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find filters the catalog by a case-insensitive substring match on name,
// then returns the contiguous slice [offset, offset+limit) clamped to bounds.
// Total always reflects the full filtered count; items keep file order.
func (s *catalogService) Find(ctx context.Context, query dto.ListItemsQuery) (model.Page, error) {
	start := time.Now()

	records, err := s.store.Load(ctx)
	if err != nil {
		metrics.RecordCatalogQuery(time.Since(start), "error")
		return model.Page{}, err
	}

	filtered := records
	if query.Query != "" {
		needle := strings.ToLower(query.Query)
		filtered = make([]model.Item, 0, len(records))
		for _, item := range records {
			if strings.Contains(strings.ToLower(item.Name), needle) {
				filtered = append(filtered, item)
			}
		}
	}

	page := model.Page{
		Items:  []model.Item{},
		Total:  len(filtered),
		Offset: query.Offset,
		Limit:  query.Limit,
	}

	if query.Offset < len(filtered) {
		end := query.Offset + query.Limit
		if end > len(filtered) {
			end = len(filtered)
		}
		page.Items = filtered[query.Offset:end]
	}

	metrics.RecordCatalogQuery(time.Since(start), "success")
	return page, nil
}

// FindByID scans the catalog for the item with the given id.
func (s *catalogService) FindByID(ctx context.Context, id string) (model.Item, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return model.Item{}, err
	}

	for _, item := range records {
		if item.ID == id {
			return item, nil
		}
	}
	return model.Item{}, ErrNotFound
}

// Create assigns an id and creation time, persists the item, and fires the
// write hook.
func (s *catalogService) Create(ctx context.Context, req dto.CreateItemRequest) (model.Item, error) {
	if err := req.Validate(); err != nil {
		return model.Item{}, err
	}

	item := model.Item{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Category:  req.Category,
		CreatedAt: time.Now().UTC(),
	}
	if req.Price != nil {
		item.Price = *req.Price
	}

	if err := s.store.Insert(ctx, item); err != nil {
		return model.Item{}, err
	}

	if s.onWrite != nil {
		s.onWrite()
	}
	return item, nil
}
