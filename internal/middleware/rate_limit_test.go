package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitRouter(rate int, window time.Duration) (*gin.Engine, *ShardedRateLimiter) {
	limiter := NewRateLimiter(rate, window)
	router := gin.New()
	router.Use(RequestID(), limiter.RateLimit())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, limiter
}

func TestRateLimitAllowsWithinBudget(t *testing.T) {
	router, limiter := setupRateLimitRouter(3, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	router, limiter := setupRateLimitRouter(2, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	router, limiter := setupRateLimitRouter(1, 20*time.Millisecond)
	defer limiter.Stop()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	time.Sleep(40 * time.Millisecond)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckRateLimitPerIdentifier(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	allowed, _ := limiter.checkRateLimit("1.1.1.1")
	assert.True(t, allowed)

	allowed, _ = limiter.checkRateLimit("1.1.1.1")
	assert.False(t, allowed)

	// A different identifier has its own budget.
	allowed, _ = limiter.checkRateLimit("2.2.2.2")
	assert.True(t, allowed)
}

func TestShardedRateLimiterConcurrent(t *testing.T) {
	limiter := NewShardedRateLimiter(1000, time.Minute, 8)
	defer limiter.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("10.0.0.%d", i%16)
			for j := 0; j < 10; j++ {
				limiter.checkRateLimit(id)
			}
		}(i)
	}
	wg.Wait()

	total, perShard := limiter.Stats()
	assert.Equal(t, 16, total)
	assert.Len(t, perShard, 8)
}

func TestCleanupExpired(t *testing.T) {
	limiter := NewShardedRateLimiter(10, 10*time.Millisecond, 4)
	defer limiter.Stop()

	limiter.checkRateLimit("1.1.1.1")
	limiter.checkRateLimit("2.2.2.2")

	total, _ := limiter.Stats()
	assert.Equal(t, 2, total)

	time.Sleep(30 * time.Millisecond)
	limiter.cleanupExpired()

	total, _ = limiter.Stats()
	assert.Equal(t, 0, total)
}
