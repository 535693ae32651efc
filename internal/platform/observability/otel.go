// Package observability installs the process-wide logger, tracer provider and meter provider.
package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const serviceNamespace = "xtremepizzaria"

// Settings selects the log level and where spans are exported.
type Settings struct {
	ServiceName string
	Environment string
	// LogLevel is one of debug, info, warn or error; anything else means info.
	LogLevel string
	// OTLPEndpoint is the collector host:port. Empty keeps the exporter default.
	OTLPEndpoint string
	OTLPSecure   bool
	// Attributes are added to the telemetry resource, e.g. the state namespace.
	Attributes []attribute.KeyValue
	// LogOutput defaults to stdout.
	LogOutput io.Writer
}

// Instruments bundles the runtime-wide observability dependencies.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	reader         *sdkmetric.ManualReader
}

// Init installs slog and the OpenTelemetry providers described by s as process defaults.
// The returned shutdown flushes pending spans and must run on exit.
func Init(ctx context.Context, s Settings) (*Instruments, func(context.Context) error, error) {
	logger := NewLogger(s.LogLevel, s.LogOutput)
	slog.SetDefault(logger)

	res, err := s.resource(ctx)
	if err != nil {
		return nil, nil, err
	}
	exporter, err := s.spanExporter(ctx, logger)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res), sdktrace.WithBatcher(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	shutdown := func(ctx context.Context) error {
		return errors.Join(mp.Shutdown(ctx), tp.Shutdown(ctx))
	}
	return &Instruments{Logger: logger, TracerProvider: tp, MeterProvider: mp, reader: reader}, shutdown, nil
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// Collect reads the current value of every storefront counter.
func (i *Instruments) Collect(ctx context.Context) (metricdata.ResourceMetrics, error) {
	var rm metricdata.ResourceMetrics
	if i == nil || i.reader == nil {
		return rm, nil
	}
	err := i.reader.Collect(ctx, &rm)
	return rm, err
}

// NewLogger returns a JSON logger writing to w (stdout when nil) at the named level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl, AddSource: true}))
}

func (s Settings) resource(ctx context.Context) (*resource.Resource, error) {
	environment := s.Environment
	if environment == "" {
		environment = "local"
	}
	attrs := append([]attribute.KeyValue{
		attribute.String("service.name", s.ServiceName),
		attribute.String("service.namespace", serviceNamespace),
		attribute.String("deployment.environment", environment),
	}, s.Attributes...)
	return resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(attrs...),
	)
}

// spanExporter prefers OTLP over HTTP and falls back to pretty-printed stdout spans.
func (s Settings) spanExporter(ctx context.Context, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	var opts []otlptracehttp.Option
	if endpoint := strings.TrimSpace(s.OTLPEndpoint); endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if !s.OTLPSecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}
	logger.Warn("OTLP trace exporter unavailable, writing spans to stdout", slog.String("error", err.Error()))
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}
