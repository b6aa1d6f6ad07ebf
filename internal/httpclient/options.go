package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
)

type clientOptions struct {
	meterProvider  metric.MeterProvider
	providerName   string
	roundTripper   http.RoundTripper
	requestTimeout time.Duration
	headers        map[string]string
	baseURL        string
}

// ClientOption configures an InstrumentedClient.
type ClientOption func(*clientOptions)

func newClientOptions(opts ...ClientOption) *clientOptions {
	options := &clientOptions{}
	for _, o := range opts {
		o(options)
	}
	return options
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) ClientOption {
	return func(o *clientOptions) {
		o.meterProvider = mp
	}
}

// WithProviderName labels metrics and spans.
func WithProviderName(name string) ClientOption {
	return func(o *clientOptions) {
		o.providerName = name
	}
}

// WithRoundTripper replaces the default transport. It is still wrapped for tracing.
func WithRoundTripper(rt http.RoundTripper) ClientOption {
	return func(o *clientOptions) {
		o.roundTripper = rt
	}
}

func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.requestTimeout = timeout
	}
}

// WithHeaders sets headers sent on every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(o *clientOptions) {
		o.headers = headers
	}
}

// WithBaseURL is prefixed to relative request paths.
func WithBaseURL(url string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = url
	}
}

type requestOptions struct {
	errorHandler   ResponseErrorHandler
	labels         []Label
	logHeaders     bool
	redactHeaders  map[string]bool
	logBodyOnError bool
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

func newRequestOptions(opts ...RequestOption) *requestOptions {
	options := &requestOptions{redactHeaders: map[string]bool{}}
	for _, o := range opts {
		o(options)
	}
	return options
}

// ResponseErrorHandler turns a completed response into an error, or nil when it is acceptable.
type ResponseErrorHandler func(statusCode int, body []byte) error

func WithResponseErrorHandler(handler ResponseErrorHandler) RequestOption {
	return func(o *requestOptions) {
		o.errorHandler = handler
	}
}

// Label is an extra metric attribute.
type Label struct {
	Key   string
	Value string
}

// WithLabels adds attributes to the request metrics.
func WithLabels(labels ...Label) RequestOption {
	return func(o *requestOptions) {
		o.labels = append(o.labels, labels...)
	}
}

// WithHeadersLogConfig records request headers on the span. Headers named in redact are masked.
func WithHeadersLogConfig(enable bool, redact ...string) RequestOption {
	return func(o *requestOptions) {
		o.logHeaders = enable
		for _, h := range redact {
			o.redactHeaders[http.CanonicalHeaderKey(h)] = true
		}
	}
}

// WithErrorBodyEvent attaches the response body to the span when the error handler rejects it.
func WithErrorBodyEvent() RequestOption {
	return func(o *requestOptions) {
		o.logBodyOnError = true
	}
}
