// Package httpclient provides a JSON HTTP client instrumented with OpenTelemetry traces and metrics.
package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/http/httptrace"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/dox-arbitrage/internal/metrics"
)

const (
	defaultDialKeepAlive         = 10 * time.Second
	defaultRequestTimeout        = 30 * time.Second
	defaultMaxConnsPerHost       = 5
	defaultIdleConnTimeout       = 2 * time.Minute
	defaultExpectContinueTimeout = 100 * time.Millisecond

	instrumentationName = "httpclient"
)

// Client builds requests against one upstream.
type Client interface {
	NewRequest(opts ...RequestOption) Request
}

// InstrumentedClient wraps http.Client with tracing and per-provider metrics.
type InstrumentedClient struct {
	client       *http.Client
	providerName string
	baseURL      string
	headers      map[string]string
	tracer       trace.Tracer

	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewInstrumentedClient creates a client. The transport is wrapped with otelhttp so
// DNS, connect and TLS phases show up as span events.
func NewInstrumentedClient(opts ...ClientOption) (*InstrumentedClient, error) {
	options := newClientOptions(opts...)

	transport := options.roundTripper
	if transport == nil {
		transport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				KeepAlive: defaultDialKeepAlive,
			}).DialContext,
			MaxConnsPerHost:       defaultMaxConnsPerHost,
			IdleConnTimeout:       defaultIdleConnTimeout,
			ExpectContinueTimeout: defaultExpectContinueTimeout,
		}
	}

	timeout := defaultRequestTimeout
	if options.requestTimeout > 0 {
		timeout = options.requestTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(
			transport,
			otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
				return otelhttptrace.NewClientTrace(ctx)
			}),
		),
	}

	providerName := options.providerName
	if providerName == "" {
		providerName = "default"
	}

	meterProvider := options.meterProvider
	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}
	meter := meterProvider.Meter(instrumentationName)

	return &InstrumentedClient{
		client:       httpClient,
		providerName: providerName,
		baseURL:      options.baseURL,
		headers:      options.headers,
		tracer:       otel.GetTracerProvider().Tracer(instrumentationName),
		requests:     metrics.Counter(meter, "http_client_requests_total", "Outbound HTTP requests by provider and status class"),
		duration:     metrics.Histogram(meter, "http_client_duration_ms", "Outbound HTTP round trip", "ms"),
	}, nil
}

// NewRequest starts a request carrying the client's default headers.
func (c *InstrumentedClient) NewRequest(opts ...RequestOption) Request {
	reqOpts := newRequestOptions(opts...)

	headers := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		headers[k] = v
	}

	return &request{
		client:  c,
		headers: headers,
		opts:    reqOpts,
	}
}
