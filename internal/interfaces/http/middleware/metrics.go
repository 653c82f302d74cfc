package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records view server request counts and latencies on reg. A nil
// registerer disables collection.
func Metrics(reg prometheus.Registerer) gin.HandlerFunc {
	if reg == nil {
		return func(c *gin.Context) { c.Next() }
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_view_request_duration_seconds",
		Help:    "Duration of view server requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_view_requests_total",
		Help: "View server requests by status.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
