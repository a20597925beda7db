package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BookingsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rental_bookings_total",
		Help: "Total number of successful room bookings",
	})
	PaymentsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rental_payments_created_total",
		Help: "Total number of payment orders created",
	})
	MailsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rental_mails_sent_total",
		Help: "Total number of reminder mails sent",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(BookingsTotal, PaymentsCreatedTotal, MailsSentTotal, HTTPRequestsTotal, HTTPRequestDuration)
}

// GinMiddleware records basic request metrics for Prometheus to scrape.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		labels := prometheus.Labels{"method": c.Request.Method, "path": path, "status": status}
		HTTPRequestsTotal.With(labels).Inc()
		HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}
