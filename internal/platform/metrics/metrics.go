package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	gatherer prometheus.Gatherer

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	ValidationFailures *prometheus.CounterVec
	PatientsCreated    prometheus.Counter
	EntriesAdded       *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patientor_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "patientor_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patientor_validation_failures_total",
			Help: "Rejected payloads by resource and failure kind",
		}, []string{"resource", "kind"}),
		PatientsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "patientor_patients_created_total",
			Help: "Total number of patients created",
		}),
		EntriesAdded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patientor_entries_added_total",
			Help: "Total number of entries appended, by entry type",
		}, []string{"type"}),
	}
}

// The recorders below are no-ops on a nil receiver so handlers can run
// without metrics.

func (m *Metrics) IncrementValidationFailure(resource, kind string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(resource, kind).Inc()
}

func (m *Metrics) IncrementPatientsCreated() {
	if m == nil {
		return
	}
	m.PatientsCreated.Inc()
}

func (m *Metrics) IncrementEntriesAdded(entryType string) {
	if m == nil {
		return
	}
	m.EntriesAdded.WithLabelValues(entryType).Inc()
}

// Middleware records request counts and latency keyed by the matched route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
