// Package metrics exposes Prometheus metrics for the placement API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "placement"

// Manager owns every collector. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	predictions         *prometheus.CounterVec
	classifierLatency   *prometheus.HistogramVec
	classifierFailures  *prometheus.CounterVec
	persistenceFailures prometheus.Counter
	loginAttempts       *prometheus.CounterVec
	authRejections      prometheus.Counter
}

// Option configures a Manager.
type Option func(*Manager)

// WithRegistry registers collectors on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// NewManager builds the collectors on a private registry, so the default
// Go/process collectors are only present when explicitly added.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"route", "method", "status_code"},
	)

	m.predictions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "prediction",
			Name:      "labels_total",
			Help:      "Predicted labels by entry mode and outcome",
		},
		[]string{"mode", "label"},
	)

	m.classifierLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "classifier",
			Name:      "call_duration_seconds",
			Help:      "Classifier call latency in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"classifier"},
	)

	m.classifierFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "classifier",
			Name:      "failures_total",
			Help:      "Classifier calls that failed",
		},
		[]string{"classifier"},
	)

	m.persistenceFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "prediction",
		Name:      "persistence_failures_total",
		Help:      "Prediction records that could not be written to the log",
	})

	m.loginAttempts = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Admin login attempts by result",
		},
		[]string{"result"},
	)

	m.authRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "auth",
		Name:      "rejections_total",
		Help:      "Requests rejected by the bearer token gate",
	})
}

// RecordHTTPRequest records one finished request.
func (m *Manager) RecordHTTPRequest(route, method, statusCode string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(seconds)
}

// RecordPrediction counts one label produced in the given entry mode.
func (m *Manager) RecordPrediction(mode, label string) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(mode, label).Inc()
}

// ObserveClassifier records a classifier call and whether it failed.
func (m *Manager) ObserveClassifier(name string, seconds float64, failed bool) {
	if m == nil {
		return
	}
	m.classifierLatency.WithLabelValues(name).Observe(seconds)
	if failed {
		m.classifierFailures.WithLabelValues(name).Inc()
	}
}

// RecordPersistenceFailure counts a prediction that was not stored.
func (m *Manager) RecordPersistenceFailure() {
	if m == nil {
		return
	}
	m.persistenceFailures.Inc()
}

// RecordLogin counts a login attempt; result is "success" or "failure".
func (m *Manager) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(result).Inc()
}

// RecordAuthRejection counts a 401 issued by the token gate.
func (m *Manager) RecordAuthRejection() {
	if m == nil {
		return
	}
	m.authRejections.Inc()
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for this manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
