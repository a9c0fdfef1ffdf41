// Package metrics exposes the storefront's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics holds the application collectors on a private registry.
// All recording methods are safe on a nil receiver.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	cartOperations  *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	checkouts       prometheus.Counter
	toastsDropped   prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "route"},
		),
		cartOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "operations_total",
				Help:      "Cart mutations by operation and outcome.",
			},
			[]string{"op", "outcome"},
		),
		persistFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "persist_failures_total",
				Help:      "Persistence sink failures swallowed by the cart store.",
			},
			[]string{"action"},
		),
		checkouts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "checkout",
				Name:      "completed_total",
				Help:      "Confirmed checkouts.",
			},
		),
		toastsDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notification",
				Name:      "dropped_total",
				Help:      "Toasts dropped because a subscriber buffer was full.",
			},
		),
	}

	m.Registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.cartOperations,
		m.persistFailures,
		m.checkouts,
		m.toastsDropped,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CartOperation counts one cart mutation.
func (m *Metrics) CartOperation(op, outcome string) {
	if m == nil {
		return
	}
	m.cartOperations.WithLabelValues(op, outcome).Inc()
}

// PersistFailure counts one swallowed sink failure.
func (m *Metrics) PersistFailure(action string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(action).Inc()
}

// CheckoutCompleted counts one confirmed checkout.
func (m *Metrics) CheckoutCompleted() {
	if m == nil {
		return
	}
	m.checkouts.Inc()
}

// ToastDropped counts one toast a slow subscriber missed.
func (m *Metrics) ToastDropped() {
	if m == nil {
		return
	}
	m.toastsDropped.Inc()
}
