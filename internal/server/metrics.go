package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process metric collectors behind its own registry so
// repeated construction (one per engine) never trips duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	imagesGenerated *prometheus.CounterVec
	generationCost  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pictora",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests served, by route, method, and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pictora",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		imagesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pictora",
			Subsystem: "generation",
			Name:      "images_total",
			Help:      "Images produced by upstream calls, by model.",
		}, []string{"model"}),
		generationCost: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pictora",
			Subsystem: "generation",
			Name:      "cost_usd_total",
			Help:      "Estimated generation spend in USD, by model.",
		}, []string{"model"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.imagesGenerated,
		m.generationCost,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveGeneration(model string, count int, cost float64) {
	m.imagesGenerated.WithLabelValues(model).Add(float64(count))
	m.generationCost.WithLabelValues(model).Add(cost)
}

// MetricsMiddleware records per-route request counts and latency. The route
// template is used instead of the raw path so ids do not explode cardinality.
func MetricsMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
