// Package observability builds the logger, tracer and metrics registry for the process.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config describes how telemetry is exported.
type Config struct {
	ServiceName  string
	Environment  string
	Version      string
	LogLevel     string
	OTLPEndpoint string
	SampleRate   float64
}

// Observability bundles the telemetry handles injected into modules.
type Observability struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	Tracer         trace.Tracer
	Registry       *prometheus.Registry
	Metrics        metrics.OperationMetrics

	shutdown []func(context.Context) error
}

// Init builds the process telemetry. Tracing is exported over OTLP/HTTP when an
// endpoint is configured and is a no-op otherwise.
func Init(ctx context.Context, cfg Config) (*Observability, error) {
	logger := NewLogger(cfg.LogLevel).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs := &Observability{
		Logger:   logger,
		Registry: reg,
		Metrics:  metrics.NewPrometheus(reg, metricsNamespace(cfg.ServiceName)),
	}

	if cfg.OTLPEndpoint == "" {
		obs.TracerProvider = noop.NewTracerProvider()
		obs.Tracer = obs.TracerProvider.Tracer(cfg.ServiceName)
		logger.InfoContext(ctx, "Tracing disabled")
		return obs, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
		attribute.String("deployment.environment", cfg.Environment),
	))
	if err != nil {
		return nil, err
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 0.1
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	obs.TracerProvider = tp
	obs.Tracer = tp.Tracer(cfg.ServiceName)
	obs.shutdown = append(obs.shutdown, tp.Shutdown)

	logger.InfoContext(ctx, "OpenTelemetry tracing initialized", slog.String("endpoint", cfg.OTLPEndpoint))
	return obs, nil
}

// Shutdown flushes exporters.
func (o *Observability) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range o.shutdown {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}

// NewLogger returns a JSON logger on stdout at the given level.
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func metricsNamespace(service string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(service)
}
