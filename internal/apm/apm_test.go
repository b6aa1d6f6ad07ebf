package apm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestProviderFromString(t *testing.T) {
	tests := map[string]Provider{
		"console":   ConsoleProvider,
		" Zipkin ":  ZipkinProvider,
		"otlp":      OTLPGRPCProvider,
		"otlp-http": OTLPHTTPProvider,
		"http":      OTLPHTTPProvider,
		"":          NoneProvider,
		"newrelic":  NoneProvider,
	}
	for in, want := range tests {
		assert.Equal(t, want, ProviderFromString(in), "input %q", in)
	}
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders("x-honeycomb-team=abc, api-key = k2 ,broken,=empty")
	assert.Equal(t, map[string]string{"x-honeycomb-team": "abc", "api-key": "k2"}, got)
	assert.Empty(t, ParseHeaders(""))
}

func TestNewTraceProvider_None(t *testing.T) {
	tp, err := NewTraceProvider(context.Background(), TracerOptions{Provider: NoneProvider})
	require.NoError(t, err)
	assert.NoError(t, tp.Stop())
}

func TestNewTraceProvider_Console(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	tp, err := NewTraceProvider(context.Background(), TracerOptions{
		Provider:    ConsoleProvider,
		ServiceName: "dox-test",
		Writer:      &buf,
	})
	require.NoError(t, err)

	_, span := NewTracer("apm-test").StartSpanFromContext(context.Background(), "unit.span")
	span.SetAttributes(attribute.String("k", "v"))
	span.NoticeError(errors.New("boom"))
	span.End()

	require.NoError(t, tp.Stop())
	assert.Contains(t, buf.String(), "unit.span")
	assert.Contains(t, buf.String(), "dox-test")
}

func TestSpan_NoticeError(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	tracer := NewTracer("apm-test")

	_, failed := tracer.StartSpanFromContext(context.Background(), "failed")
	failed.NoticeError(errors.New("boom"))
	failed.End()

	_, cancelled := tracer.StartSpanFromContext(context.Background(), "cancelled")
	cancelled.NoticeError(fmt.Errorf("call: %w", context.Canceled))
	cancelled.End()

	spans := rec.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)

	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	require.Len(t, spans[1].Events(), 1)
	assert.Equal(t, "cancelled", spans[1].Events()[0].Name)
}
