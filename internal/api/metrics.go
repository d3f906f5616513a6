package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatblack_http_requests_total",
		Help: "HTTP requests served, by method, path and status",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatblack_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatblack_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})
)

// knownMetricPaths pins the path label to the fixed route set; everything
// else collapses into one bucket so scanners cannot blow up cardinality.
var knownMetricPaths = map[string]struct{}{
	"/":            {},
	"/api":         {},
	"/api/health":  {},
	"/api/styles":  {},
	"/api/palette": {},
	"/theme.css":   {},
	"/metrics":     {},
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := metricPath(r.URL.Path)
		status := strconv.Itoa(rec.status)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

func metricPath(path string) string {
	if _, ok := knownMetricPaths[path]; ok {
		return path
	}
	if strings.HasPrefix(path, "/static/") {
		return "/static/"
	}
	return "other"
}
