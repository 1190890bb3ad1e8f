// Package metrics provides Prometheus metrics for smallserver.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smallserver_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smallserver_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	responseBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smallserver_response_bytes_total",
			Help: "Total response body bytes written",
		},
	)

	// Resolution metrics
	fallbackPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smallserver_fallback_pages_total",
			Help: "Total responses answered with a built-in page",
		},
		[]string{"page"},
	)

	encodedResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smallserver_encoded_responses_total",
			Help: "Total responses sent with a content encoding",
		},
		[]string{"encoding"},
	)

	abortedResponsesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smallserver_aborted_responses_total",
			Help: "Total responses abandoned while streaming the body",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method string, status int, bytes int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	responseBytesTotal.Add(float64(bytes))
}

// RecordFallback records a response served from a built-in page.
func RecordFallback(page string) {
	fallbackPagesTotal.WithLabelValues(page).Inc()
}

// RecordEncoding records a compressed response.
func RecordEncoding(encoding string) {
	encodedResponsesTotal.WithLabelValues(encoding).Inc()
}

// RecordAborted records a response whose body could not be fully written.
func RecordAborted() {
	abortedResponsesTotal.Inc()
}

// Middleware returns HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordHTTPRequest(r.Method, status, ww.BytesWritten(), time.Since(start))
	})
}
