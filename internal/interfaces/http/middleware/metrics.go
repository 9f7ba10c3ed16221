package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "Completed account registrations by account type.",
	}, []string{"user_type"})

	tokenTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "token_transactions_total",
		Help: "Completed vendor token transactions by kind.",
	}, []string{"kind"})
)

// RecordRegistration counts a completed registration
func RecordRegistration(userType string) {
	registrationsTotal.WithLabelValues(userType).Inc()
}

// RecordTokenTransaction counts a completed token purchase or spend
func RecordTokenTransaction(kind string) {
	tokenTransactionsTotal.WithLabelValues(kind).Inc()
}

// MetricsMiddleware records request counts and latencies. Routes are
// labelled by their registered pattern, not the raw path, so IDs do not
// explode the cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
