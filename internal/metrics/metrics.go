package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
)

// InitMetrics registers the HTTP collectors. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pdfvault_http_requests_total",
			Help: "Number of HTTP requests processed, by method, route and status.",
		}, []string{"method", "route", "status"})

		requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pdfvault_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

		prometheus.MustRegister(requestsTotal, requestDuration)
	})
}

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		requestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}
