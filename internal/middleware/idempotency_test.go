package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIdempotencyRouter(cfg IdempotencyConfig) (*gin.Engine, *int) {
	calls := 0
	router := gin.New()
	router.Use(Idempotency(cfg))
	router.POST("/items", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": uuid.New().String()})
	})
	router.GET("/items", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, &calls
}

func postWithKey(router *gin.Engine, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	router, calls := setupIdempotencyRouter(DefaultIdempotencyConfig())

	first := postWithKey(router, "key-1", `{"name":"a"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postWithKey(router, "key-1", `{"name":"a"}`)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyDistinguishesKeys(t *testing.T) {
	router, calls := setupIdempotencyRouter(DefaultIdempotencyConfig())

	postWithKey(router, "key-1", `{"name":"a"}`)
	postWithKey(router, "key-2", `{"name":"a"}`)

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyDistinguishesBodies(t *testing.T) {
	router, calls := setupIdempotencyRouter(DefaultIdempotencyConfig())

	postWithKey(router, "key-1", `{"name":"a"}`)
	postWithKey(router, "key-1", `{"name":"b"}`)

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyIgnoresRequestsWithoutKey(t *testing.T) {
	router, calls := setupIdempotencyRouter(DefaultIdempotencyConfig())

	postWithKey(router, "", `{"name":"a"}`)
	postWithKey(router, "", `{"name":"a"}`)

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyIgnoresGET(t *testing.T) {
	router, calls := setupIdempotencyRouter(DefaultIdempotencyConfig())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyDisabled(t *testing.T) {
	cfg := DefaultIdempotencyConfig()
	cfg.Enabled = false
	router, calls := setupIdempotencyRouter(cfg)

	postWithKey(router, "key-1", `{"name":"a"}`)
	postWithKey(router, "key-1", `{"name":"a"}`)

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyCacheExpiry(t *testing.T) {
	cache := newIdempotencyCache(20 * time.Millisecond)

	cache.Set(1, &cachedResponse{StatusCode: http.StatusCreated, Timestamp: time.Now()})

	_, ok := cache.Get(1)
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = cache.Get(1)
	assert.False(t, ok)
}
