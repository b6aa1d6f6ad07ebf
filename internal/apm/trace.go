// Package apm wraps OpenTelemetry tracing for the application's bounded contexts.
package apm

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer starts spans for one bounded context.
type Tracer interface {
	StartSpanFromContext(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span)
	SpanFromContext(ctx context.Context) Span
}

// Span is the subset of trace.Span the modules use.
type Span interface {
	SetAttributes(values ...attribute.KeyValue)
	End(options ...trace.SpanEndOption)
	NoticeError(err error)
	AddEvent(name string, options ...trace.EventOption)
	SpanContext() trace.SpanContext
}

type openTracer struct {
	name string
}

// NewTracer returns a tracer that resolves the global provider on every span,
// so spans started after telemetry setup reach the configured exporter.
func NewTracer(name string) Tracer {
	return &openTracer{name: name}
}

func (t *openTracer) StartSpanFromContext(
	ctx context.Context, name string, opts ...trace.SpanStartOption,
) (context.Context, Span) {
	ctx, span := otel.Tracer(t.name).Start(ctx, name, opts...)
	return ctx, &traceSpan{span}
}

func (t *openTracer) SpanFromContext(ctx context.Context) Span {
	return &traceSpan{trace.SpanFromContext(ctx)}
}

type traceSpan struct {
	trace.Span
}

// NoticeError records err and marks the span failed. A cancelled context is the
// user walking away, so it is recorded as an event and the span stays unset.
func (t *traceSpan) NoticeError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		t.Span.AddEvent("cancelled")
		return
	}
	t.Span.RecordError(err)
	t.Span.SetStatus(codes.Error, err.Error())
}
