// Package telemetry wires OpenTelemetry tracing and log export plus the
// Prometheus metrics exposed on /metrics.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeenmata/impex/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceVersion = "1.0.0"

// Provider owns the trace and log pipelines. A disabled provider is valid
// and all of its methods are no-ops.
type Provider struct {
	tracer *sdktrace.TracerProvider
	logs   *sdklog.LoggerProvider
	cfg    config.TelemetryConfig
	logger *zap.Logger
}

// NewProvider configures OTLP gRPC export of traces and logs. With telemetry
// disabled it returns a provider that does nothing.
func NewProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Provider, error) {
	p := &Provider{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		logger.Info("Telemetry disabled")
		return p, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	logOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		logOpts = append(logOpts, otlploggrpc.WithInsecure())
	}

	traceExporter, err := otlptracegrpc.New(ctx, traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	logExporter, err := otlploggrpc.New(ctx, logOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	p.tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SamplingRatio)),
	)
	p.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)

	otel.SetTracerProvider(p.tracer)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	global.SetLoggerProvider(p.logs)

	logger.Info("OpenTelemetry initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.String("service_name", cfg.ServiceName),
	)
	return p, nil
}

func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1.0:
		return sdktrace.AlwaysSample()
	case ratio <= 0.0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// Enabled reports whether spans and logs are being exported
func (p *Provider) Enabled() bool {
	return p.tracer != nil
}

// WrapLogger tees l into the OTLP log pipeline so that zap entries are
// exported alongside traces. Without telemetry it returns l unchanged.
func (p *Provider) WrapLogger(l *zap.Logger) *zap.Logger {
	if p.logs == nil {
		return l
	}
	bridge := otelzap.NewCore(p.cfg.ServiceName, otelzap.WithLoggerProvider(p.logs))
	return l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, bridge)
	}))
}

// Shutdown flushes pending spans and logs
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := errors.Join(p.tracer.Shutdown(ctx), p.logs.Shutdown(ctx))
	if err != nil {
		p.logger.Error("Error shutting down telemetry", zap.Error(err))
		return fmt.Errorf("failed to shutdown telemetry: %w", err)
	}
	p.logger.Info("Telemetry shutdown complete")
	return nil
}
