package telemetry

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/CTAG07/Sashizume/pkg/title"
)

const instrumentationName = "github.com/CTAG07/Sashizume/pkg/telemetry"

// GenerationsMetric counts successful generations by category and palette.
const GenerationsMetric = "sashizume.generations"

// TracingGenerator wraps a title.Generator with OpenTelemetry tracing.
type TracingGenerator struct {
	next   title.Generator
	tracer trace.Tracer
}

// Compile-time check: TracingGenerator implements title.Generator.
var _ title.Generator = (*TracingGenerator)(nil)

// NewTracingGenerator creates a tracing decorator around next using the global tracer provider.
func NewTracingGenerator(next title.Generator) *TracingGenerator {
	return &TracingGenerator{
		next:   next,
		tracer: otel.Tracer(instrumentationName),
	}
}

func (g *TracingGenerator) Generate(ctx context.Context, keyword string, variant int) (title.Result, error) {
	ctx, span := g.tracer.Start(ctx, "Generator.Generate",
		trace.WithAttributes(
			attribute.Int("title.variant", variant),
			attribute.Int("title.keyword_length", utf8.RuneCountInString(keyword)),
		),
	)
	defer span.End()

	r, err := g.next.Generate(ctx, keyword, variant)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return r, err
	}
	span.SetAttributes(
		attribute.String("title.category", string(r.Category)),
		attribute.String("title.palette", r.Palette.Name),
	)
	return r, nil
}

// MeteredGenerator wraps a title.Generator with a generation counter.
type MeteredGenerator struct {
	next        title.Generator
	generations metric.Int64Counter
}

// Compile-time check: MeteredGenerator implements title.Generator.
var _ title.Generator = (*MeteredGenerator)(nil)

// NewMeteredGenerator creates a metrics decorator around next using the global meter provider.
func NewMeteredGenerator(next title.Generator) (*MeteredGenerator, error) {
	counter, err := otel.Meter(instrumentationName).Int64Counter(GenerationsMetric,
		metric.WithDescription("Number of generated titles."),
		metric.WithUnit("{title}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", GenerationsMetric, err)
	}
	return &MeteredGenerator{next: next, generations: counter}, nil
}

func (g *MeteredGenerator) Generate(ctx context.Context, keyword string, variant int) (title.Result, error) {
	r, err := g.next.Generate(ctx, keyword, variant)
	if err != nil {
		return r, err
	}
	g.generations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", string(r.Category)),
		attribute.String("palette", r.Palette.Name),
	))
	return r, nil
}

// Instrument wraps next with metrics and tracing, tracing outermost.
func Instrument(next title.Generator) (title.Generator, error) {
	metered, err := NewMeteredGenerator(next)
	if err != nil {
		return nil, err
	}
	return NewTracingGenerator(metered), nil
}
