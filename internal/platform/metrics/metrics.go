// Package metrics defines the Prometheus collectors of the admin service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	submissions     *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry so that tests can build
// several instances without duplicate registration panics.
func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "backend_requests_total",
			Help:        "Total number of calls to the remote REST API",
			ConstLabels: constLabels,
		}, []string{"method", "endpoint", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "backend_request_duration_seconds",
			Help:        "Duration of calls to the remote REST API in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "endpoint"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "form_submissions_total",
			Help:        "Form submissions by form and outcome",
			ConstLabels: constLabels,
		}, []string{"form", "outcome"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.backendCalls,
		m.backendDuration,
		m.submissions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and duration per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// ObserveBackendCall records one call to the remote API.
// A nil receiver is a no-op so that clients can be built without metrics.
func (m *Metrics) ObserveBackendCall(method, endpoint string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.backendCalls.WithLabelValues(method, endpoint, outcome).Inc()
	m.backendDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// ObserveSubmission records a form submission outcome
// ("success", "error", "invalid", "duplicate").
func (m *Metrics) ObserveSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, outcome).Inc()
}
