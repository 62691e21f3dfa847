package telemetry

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics holds the Prometheus collectors for the storefront. It is safe
// for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	hybridFallbacks *prometheus.CounterVec
	breakerState    *prometheus.GaugeVec
	ordersTotal     *prometheus.CounterVec
	bulkRows        *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry together with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		hybridFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hybrid_fallback_total",
				Help:      "Operations served from sample data because the database was unavailable.",
			},
			[]string{"table", "operation"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "hybrid_breaker_state",
				Help:      "Circuit breaker state per table (0=closed, 1=half-open, 2=open).",
			},
			[]string{"table"},
		),
		ordersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_total",
				Help:      "Orders by resulting status.",
			},
			[]string{"status"},
		),
		bulkRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bulk_rows_total",
				Help:      "Rows processed by bulk uploads.",
			},
			[]string{"entity", "result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.hybridFallbacks,
		m.breakerState,
		m.ordersTotal,
		m.bulkRows,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Middleware records request counts and latencies by route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Fallback counts an operation served from sample data
func (m *Metrics) Fallback(table, operation string) {
	m.hybridFallbacks.WithLabelValues(table, operation).Inc()
}

// BreakerState records a circuit breaker transition
func (m *Metrics) BreakerState(table string, state int) {
	m.breakerState.WithLabelValues(table).Set(float64(state))
}

// OrderStatus counts an order reaching a status
func (m *Metrics) OrderStatus(status string) {
	m.ordersTotal.WithLabelValues(status).Inc()
}

// BulkRows counts processed bulk upload rows
func (m *Metrics) BulkRows(entity, result string, n int) {
	m.bulkRows.WithLabelValues(entity, result).Add(float64(n))
}

// OrderEvents returns an event handler that feeds OrderStatus from the
// order events on the bus
func (m *Metrics) OrderEvents() shared.EventHandler {
	return orderEventCounter{m: m}
}

type orderEventCounter struct {
	m *Metrics
}

func (h orderEventCounter) EventTypes() []string {
	return []string{trade.EventTypeOrderSubmitted, trade.EventTypeOrderStatusChanged}
}

func (h orderEventCounter) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderSubmittedEvent:
		h.m.OrderStatus(string(trade.OrderStatusSubmitted))
	case *trade.OrderStatusChangedEvent:
		h.m.OrderStatus(string(e.To))
	}
	return nil
}
