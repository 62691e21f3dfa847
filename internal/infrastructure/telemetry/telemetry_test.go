package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/jeenmata/impex/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	l := zap.NewNop()
	assert.Same(t, l, p.WrapLogger(l))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.5).Description(), "TraceIDRatioBased")
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	_, span := tp.Tracer("test").Start(context.Background(), "op")

	RecordError(span, nil)
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.Fallback("products", "list")
	m.Fallback("products", "list")
	m.OrderStatus("Submitted")
	m.BulkRows("products", "imported", 3)
	m.BreakerState("products", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.hybridFallbacks.WithLabelValues("products", "list")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersTotal.WithLabelValues("Submitted")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.bulkRows.WithLabelValues("products", "imported")))

	var g dto.Metric
	require.NoError(t, m.breakerState.WithLabelValues("products").Write(&g))
	assert.Equal(t, 2.0, g.GetGauge().GetValue())
}

func TestMetrics_OrderEvents(t *testing.T) {
	m := NewMetrics()
	h := m.OrderEvents()
	ctx := context.Background()

	assert.ElementsMatch(t, []string{trade.EventTypeOrderSubmitted, trade.EventTypeOrderStatusChanged}, h.EventTypes())
	require.NoError(t, h.Handle(ctx, &trade.OrderSubmittedEvent{}))
	require.NoError(t, h.Handle(ctx, &trade.OrderStatusChangedEvent{From: trade.OrderStatusSubmitted, To: trade.OrderStatusConfirmed}))
	require.NoError(t, h.Handle(ctx, &trade.OrderStatusChangedEvent{From: trade.OrderStatusConfirmed, To: trade.OrderStatusCancelled}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersTotal.WithLabelValues("Submitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersTotal.WithLabelValues("Confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersTotal.WithLabelValues("Cancelled")))
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/p1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/products/:id", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_http_requests_total")
}
