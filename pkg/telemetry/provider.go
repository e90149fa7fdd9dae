package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var (
	// ErrUnsupportedExporter is returned by Validate for an unknown Exporter.
	ErrUnsupportedExporter = errors.New("unsupported exporter")
	// ErrInvalidSampleRatio is returned by Validate for a SampleRatio outside [0, 1].
	ErrInvalidSampleRatio = errors.New("sample ratio must be between 0 and 1")
)

// Config holds the telemetry section of the service configuration.
type Config struct {
	Enabled        bool   `json:"enabled" env:"SASHIZUME_OTEL_ENABLED"`
	ServiceName    string `json:"service_name" env:"OTEL_SERVICE_NAME"`
	ServiceVersion string `json:"service_version" env:"OTEL_SERVICE_VERSION"`
	Environment    string `json:"environment" env:"OTEL_ENVIRONMENT"`
	Exporter       string `json:"exporter" env:"OTEL_EXPORTER"`
	// Insecure sends OTLP over plain HTTP.
	Insecure bool `json:"insecure" env:"OTEL_INSECURE"`
	// SampleRatio is the share of root spans kept. Child spans follow their parent.
	SampleRatio float64 `json:"sample_ratio" env:"OTEL_TRACES_SAMPLER_ARG"`
	// MetricIntervalSec is how often generation counters are exported.
	MetricIntervalSec int `json:"metric_interval_sec" env:"OTEL_METRIC_EXPORT_INTERVAL_SEC"`
}

// DefaultConfig returns a disabled configuration that would print to stdout.
func DefaultConfig() Config {
	return Config{
		Enabled:           false,
		ServiceName:       "sashizume",
		ServiceVersion:    "dev",
		Environment:       "development",
		Exporter:          ExporterStdout,
		Insecure:          true,
		SampleRatio:       1,
		MetricIntervalSec: 60,
	}
}

// Validate reports the first setting Setup could not honour.
func (c Config) Validate() error {
	switch c.Exporter {
	case ExporterStdout, ExporterOTLP:
	default:
		return fmt.Errorf("%w: %q (use %q or %q)", ErrUnsupportedExporter, c.Exporter, ExporterStdout, ExporterOTLP)
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.SampleRatio)
	}
	return nil
}

func (c Config) metricInterval() time.Duration {
	if c.MetricIntervalSec <= 0 {
		return time.Minute
	}
	return time.Duration(c.MetricIntervalSec) * time.Second
}

// Providers owns the registered SDK providers. Both are nil when telemetry is
// disabled.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Setup builds the tracer and meter providers for cfg and installs them, with
// W3C trace context propagation, as the otel globals. A disabled cfg leaves the
// global no-op providers in place.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("creating otel resource: %w", err)
	}

	spans, metrics, err := newExporters(ctx, cfg)
	if err != nil {
		return nil, err
	}

	p := &Providers{
		Tracer: sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
			sdktrace.WithBatcher(spans),
		),
		Meter: sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metrics,
				sdkmetric.WithInterval(cfg.metricInterval()))),
		),
	}

	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return p, nil
}

// newExporters creates the span and metric exporters for a validated cfg.
func newExporters(ctx context.Context, cfg Config) (sdktrace.SpanExporter, sdkmetric.Exporter, error) {
	if cfg.Exporter == ExporterStdout {
		spans, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, fmt.Errorf("creating stdout span exporter: %w", err)
		}
		metrics, err := stdoutmetric.New()
		if err != nil {
			return nil, nil, fmt.Errorf("creating stdout metric exporter: %w", err)
		}
		return spans, metrics, nil
	}

	var traceOpts []otlptracehttp.Option
	var metricOpts []otlpmetrichttp.Option
	if cfg.Insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
	}
	spans, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("creating otlp span exporter: %w", err)
	}
	metrics, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		_ = spans.Shutdown(ctx)
		return nil, nil, fmt.Errorf("creating otlp metric exporter: %w", err)
	}
	return spans, metrics, nil
}
