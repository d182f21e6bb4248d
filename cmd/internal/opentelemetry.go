package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/config"
)

// OTExporter holds the global providers, Metrics serves the Prometheus scrape endpoint.
type OTExporter struct {
	Metrics        http.Handler
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// NewOTExporter instantiates the OpenTelemetry exporters and sets the global providers. Traces are only
// exported when a Jaeger endpoint is configured.
func NewOTExporter(conf config.Telemetry) (*OTExporter, error) {
	promExporter, err := prometheus.New(prometheus.WithoutUnits())
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "prometheus.New")
	}

	meterProvider := metric.NewMeterProvider(metric.WithReader(promExporter))

	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(time.Second)); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "runtime.Start")
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(conf.ServiceName),
		)),
	}

	if conf.JaegerEndpoint != "" {
		jaegerExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(conf.JaegerEndpoint)))
		if err != nil {
			return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "jaeger.New")
		}

		opts = append(opts, sdktrace.WithBatcher(jaegerExporter))
	}

	tracerProvider := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tracerProvider)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &OTExporter{
		Metrics:        promhttp.Handler(),
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
	}, nil
}

// Shutdown flushes pending spans and metrics.
func (o *OTExporter) Shutdown(ctx context.Context) error {
	if err := o.tracerProvider.Shutdown(ctx); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "tracerProvider.Shutdown")
	}

	if err := o.meterProvider.Shutdown(ctx); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "meterProvider.Shutdown")
	}

	return nil
}
