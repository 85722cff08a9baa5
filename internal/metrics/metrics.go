package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ExchangeInFlight is the number of currency-rate provider calls currently running.
	ExchangeInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "exchange_requests_in_flight",
			Help: "Number of currency-rate provider requests currently in flight",
		},
	)

	// ExchangeTotal counts currency-rate provider calls by outcome (ok, invalid_pair, error).
	ExchangeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_requests_total",
			Help: "Total number of currency-rate provider requests by outcome",
		},
		[]string{"outcome"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ExchangeInFlight, ExchangeTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /expenses/123 -> /expenses/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordExchange increments the provider-call counter for the given outcome (ok, invalid_pair, error).
func RecordExchange(outcome string) {
	ExchangeTotal.WithLabelValues(outcome).Inc()
}
