package prometheus

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	HttpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	OrdersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_orders_processed_total",
			Help: "Total number of orders placed, by outcome",
		},
		[]string{"status"},
	)

	RestockNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_restock_notifications_total",
			Help: "Restock e-mails sent to suppliers, by outcome",
		},
		[]string{"status"},
	)

	KafkaMessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Total number of Kafka messages processed",
		},
		[]string{"topic", "status"},
	)

	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation", "table"},
	)
)

// ObserveQuery records how long a store operation took. Use as
// defer prometheus.ObserveQuery("get", "shoes", time.Now()).
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		if path == "" {
			path = "not_found"
		}

		HttpRequestsInFlight.Inc()
		defer HttpRequestsInFlight.Dec()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
