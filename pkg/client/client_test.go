package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.SuccessResponse{
		Data:      data,
		RequestID: "test-request-id",
		Timestamp: time.Now(),
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: "test-request-id",
		Timestamp: time.Now(),
	})
}

func TestListItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)
		assert.Equal(t, "wid", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		writeSuccess(w, http.StatusOK, model.Page{
			Items: []model.Item{{ID: "a", Name: "Widget", Price: 10}},
			Total: 1, Offset: 10, Limit: 20,
		})
	}))
	defer server.Close()

	c := New(server.URL)
	page, err := c.ListItems(context.Background(), ListOptions{Query: "wid", Offset: 10, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Widget", page.Items[0].Name)
}

func TestListItemsOmitsZeroParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeSuccess(w, http.StatusOK, model.Page{Items: []model.Item{}})
	}))
	defer server.Close()

	_, err := New(server.URL).ListItems(context.Background(), ListOptions{})
	assert.NoError(t, err)
}

func TestGetItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items/item-1", r.URL.Path)
		writeSuccess(w, http.StatusOK, model.Item{ID: "item-1", Name: "Widget", Price: 10})
	}))
	defer server.Close()

	item, err := New(server.URL).GetItem(context.Background(), "item-1")

	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, 10.0, item.Price)
}

func TestGetItemNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, dto.ErrCodeNotFound, "item not found")
	}))
	defer server.Close()

	_, err := New(server.URL).GetItem(context.Background(), "nope")

	assert.True(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "item not found", apiErr.Message)
	assert.Equal(t, "test-request-id", apiErr.RequestID)
}

func TestCreateItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.CreateItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Widget", req.Name)

		writeSuccess(w, http.StatusCreated, model.Item{ID: "new-id", Name: req.Name, Price: *req.Price})
	}))
	defer server.Close()

	item, err := New(server.URL).CreateItem(context.Background(), dto.CreateItemRequest{
		Name:  "Widget",
		Price: floatPtr(19.99),
	})

	require.NoError(t, err)
	assert.Equal(t, "new-id", item.ID)
}

func TestCreateItemValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, dto.ErrCodeInvalidRequest, "price: must not be negative")
	}))
	defer server.Close()

	_, err := New(server.URL).CreateItem(context.Background(), dto.CreateItemRequest{
		Name:  "Widget",
		Price: floatPtr(-1),
	})

	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats", r.URL.Path)
		writeSuccess(w, http.StatusOK, model.Stats{Total: 3, AveragePrice: 20})
	}))
	defer server.Close()

	stats, err := New(server.URL).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 20.0, stats.AveragePrice)
}

func TestStatsDataUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, dto.ErrCodeDataUnavailable, "catalog data unavailable")
	}))
	defer server.Close()

	_, err := New(server.URL).Stats(context.Background())

	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "secret" {
			writeError(w, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "API key required")
			return
		}
		writeSuccess(w, http.StatusCreated, model.Item{ID: "new-id"})
	}))
	defer server.Close()

	_, err := New(server.URL).CreateItem(context.Background(), dto.CreateItemRequest{Name: "a", Price: floatPtr(1)})
	assert.True(t, errors.Is(err, ErrUnauthorized))

	item, err := New(server.URL, WithAPIKey("secret")).CreateItem(context.Background(), dto.CreateItemRequest{Name: "a", Price: floatPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "new-id", item.ID)
}

func TestCancellationReturnsContextError(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := New(server.URL).ListItems(ctx, ListOptions{})

	// Teardown must be distinguishable from server failure.
	assert.True(t, errors.Is(err, context.Canceled))

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestDeadlineReturnsContextError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).ListItems(ctx, ListOptions{})

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNonStandardErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL).Stats(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, dto.ErrCodeInternal, apiErr.Code)
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 404, Code: dto.ErrCodeNotFound, Message: "item not found"}
	assert.Equal(t, "catalog: not_found (404): item not found", err.Error())

	bare := &APIError{StatusCode: 500, Code: dto.ErrCodeInternal}
	assert.Equal(t, "catalog: internal_error (500)", bare.Error())
}
