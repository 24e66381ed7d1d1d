package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/service"
	"github.com/guttosm/catalog-service/internal/store"
)

const (
	// DefaultPageLimit applies when the limit query parameter is absent.
	DefaultPageLimit = 50
	// DefaultMaxPageLimit caps the limit query parameter.
	DefaultMaxPageLimit = 500
)

// Handler provides HTTP handlers for catalog routes.
type Handler struct {
	catalog      service.CatalogService
	stats        service.StatsService
	defaultLimit int
	maxLimit     int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithPageLimits overrides the default and maximum page sizes.
func WithPageLimits(defaultLimit, maxLimit int) HandlerOption {
	return func(h *Handler) {
		if defaultLimit > 0 {
			h.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			h.maxLimit = maxLimit
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(catalog service.CatalogService, stats service.StatsService, opts ...HandlerOption) *Handler {
	h := &Handler{
		catalog:      catalog,
		stats:        stats,
		defaultLimit: DefaultPageLimit,
		maxLimit:     DefaultMaxPageLimit,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// respondServiceError maps service and store errors to HTTP responses.
func respondServiceError(builder *ResponseBuilder, err error) {
	var validationErr *dto.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyItemNotFound, err)
	case errors.As(err, &validationErr):
		builder.ErrorWithMessage(http.StatusBadRequest, validationErr.Error(), err)
	case errors.Is(err, store.ErrDataUnavailable):
		builder.ErrorWithCode(http.StatusInternalServerError, dto.ErrCodeDataUnavailable, i18n.ErrKeyDataUnavailable, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// ListItems handles GET /api/items requests.
//
// @Summary      List catalog items
// @Description  Returns one page of the catalog. The optional q parameter filters items whose name contains the given substring (case-insensitive). Items keep their original file order; total always reflects the full filtered count.
// @Tags         Items
// @Produce      json
// @Param        q      query string false "Case-insensitive substring filter on name"
// @Param        offset query int    false "Index of the first item to return" default(0) minimum(0)
// @Param        limit  query int    false "Maximum number of items to return" default(50) minimum(0)
// @Success      200 {object} dto.SuccessResponse "One page of items"
// @Failure      400 {object} dto.ErrorResponse "Malformed offset or limit"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Catalog data unavailable"
// @Router       /api/items [get]
func (h *Handler) ListItems(c *gin.Context) {
	builder := NewResponseBuilder(c)

	query, err := dto.ParseListItemsQuery(
		c.Query("q"),
		c.Query("offset"),
		c.Query("limit"),
		h.defaultLimit,
		h.maxLimit,
	)
	if err != nil {
		builder.ErrorWithMessage(http.StatusBadRequest, err.Error(), err)
		return
	}

	page, err := h.catalog.Find(c.Request.Context(), query)
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	builder.SuccessOK(page)
}

// GetItem handles GET /api/items/:id requests.
//
// @Summary      Get a catalog item
// @Description  Returns the item with the given id.
// @Tags         Items
// @Produce      json
// @Param        id path string true "Item identifier"
// @Success      200 {object} dto.SuccessResponse "The requested item"
// @Failure      404 {object} dto.ErrorResponse "Unknown item id"
// @Failure      500 {object} dto.ErrorResponse "Catalog data unavailable"
// @Router       /api/items/{id} [get]
func (h *Handler) GetItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	item, err := h.catalog.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	builder.SuccessOK(item)
}

// CreateItem handles POST /api/items requests.
//
// @Summary      Create a catalog item
// @Description  Validates and inserts a new item. The server assigns the id and creation time. Supports idempotency via Idempotency-Key header. Inserting an item invalidates the cached stats snapshot.
// @Tags         Items
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CreateItemRequest true "Item to insert"
// @Success      201 {object} dto.SuccessResponse "The stored item"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Catalog data unavailable"
// @Router       /api/items [post]
func (h *Handler) CreateItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	item, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	builder.SuccessCreated(item)
}

// GetStats handles GET /api/stats requests.
//
// @Summary      Catalog statistics
// @Description  Returns the item count and mean price over the full catalog. The snapshot is cached for a fixed window (default 5 minutes); calls within the window return the stored value unchanged. The mean of an empty catalog is 0.
// @Tags         Stats
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Current stats snapshot"
// @Failure      500 {object} dto.ErrorResponse "Catalog data unavailable"
// @Router       /api/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	builder := NewResponseBuilder(c)

	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	builder.SuccessOK(stats)
}
