package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// API
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests."},
		[]string{"handler", "method", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"handler", "method"},
	)

	// Messaging
	SendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "whatsapp_send_total", Help: "WhatsApp send outcomes."},
		[]string{"path", "outcome"}, // local|api, sent|failed|not_approved
	)
	WebhookVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_verifications_total", Help: "Webhook verification outcomes."},
		[]string{"outcome"},
	)
	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_events_total", Help: "Inbound webhook items."},
		[]string{"kind"}, // message | status
	)

	// Public site
	ContactSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "contact_submissions_total", Help: "Accepted contact form submissions."},
	)
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "rate_limited_total", Help: "Requests refused by the rate limiter."},
		[]string{"handler"},
	)
)

// MustRegister registers the default and partnerhub collectors.
func MustRegister() {
	prometheus.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		HTTPRequests, HTTPDuration,
		SendTotal, WebhookVerifications, WebhookEvents,
		ContactSubmissions, RateLimited,
	)
}

// Instrument records request counts and latency per route pattern.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start).Seconds()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		HTTPRequests.WithLabelValues(handler, c.Request.Method, http.StatusText(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(handler, c.Request.Method).Observe(elapsed)
	}
}
