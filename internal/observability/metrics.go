package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	registry     *prometheus.Registry
	requestCount *prometheus.CounterVec
	requestTime  *prometheus.HistogramVec
	errorCount   *prometheus.CounterVec
	assessments  *prometheus.CounterVec
	rateLimited  prometheus.Counter
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Errors returned to clients by error code.",
		}, []string{"path", "method", "code"}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed BMI assessments by category and goal.",
		}, []string{"category", "goal"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_rate_limited_total",
			Help:      "Form submissions rejected by the rate limiter.",
		}),
	}
	m.registry.MustRegister(
		m.requestCount,
		m.requestTime,
		m.errorCount,
		m.assessments,
		m.rateLimited,
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestTime.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordAssessment counts a completed assessment.
func (m *Metrics) RecordAssessment(category, goal string) {
	if m == nil {
		return
	}
	if goal == "" {
		goal = "unspecified"
	}
	m.assessments.WithLabelValues(category, goal).Inc()
}

// RecordRateLimited counts a rejected submission.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
