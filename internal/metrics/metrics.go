// Package metrics provides Prometheus metrics collection for the catalog service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CatalogQueriesTotal tracks list/search queries by status.
	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Total number of catalog list queries",
		},
		[]string{"status"},
	)

	// CatalogQueryDuration tracks catalog query duration.
	CatalogQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Catalog query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// StatsRequestsTotal tracks stats computations by source (cache or recompute).
	StatsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_requests_total",
			Help: "Total number of stats requests",
		},
		[]string{"source"},
	)

	// StoreLoadsTotal tracks catalog loads by source (cache, disk, error).
	StoreLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_loads_total",
			Help: "Total number of catalog store loads",
		},
		[]string{"source"},
	)

	// StoreWritesTotal tracks catalog writes by result.
	StoreWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_writes_total",
			Help: "Total number of catalog store writes",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCatalogQuery records metrics for a catalog list query.
func RecordCatalogQuery(duration time.Duration, status string) {
	CatalogQueryDuration.Observe(duration.Seconds())
	CatalogQueriesTotal.WithLabelValues(status).Inc()
}

// RecordStatsRequest records a stats request served from the given source.
func RecordStatsRequest(source string) {
	StatsRequestsTotal.WithLabelValues(source).Inc()
}

// RecordStoreLoad records a catalog load from the given source.
func RecordStoreLoad(source string) {
	StoreLoadsTotal.WithLabelValues(source).Inc()
}

// RecordStoreWrite records a catalog write with the given result.
func RecordStoreWrite(result string) {
	StoreWritesTotal.WithLabelValues(result).Inc()
}
