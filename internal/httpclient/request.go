package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// maxEventBody caps response bodies copied into span events.
const maxEventBody = 1024

// Request builds and sends one JSON request.
type Request interface {
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string) (*Response, error)

	SetBody(body any) Request
	SetHeader(key, value string) Request
	SetResult(result any) Request
}

// Response is a completed response with its body already read.
type Response struct {
	StatusCode int
	Header     http.Header
	body       []byte
}

func (r *Response) Body() []byte {
	return r.body
}

func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

type request struct {
	client  *InstrumentedClient
	opts    *requestOptions
	headers map[string]string
	body    any
	result  any
}

func (r *request) Get(ctx context.Context, path string) (*Response, error) {
	return r.do(ctx, http.MethodGet, path)
}

func (r *request) Post(ctx context.Context, path string) (*Response, error) {
	return r.do(ctx, http.MethodPost, path)
}

// SetBody sets the payload. Byte slices and strings are sent as is, anything else as JSON.
func (r *request) SetBody(body any) Request {
	r.body = body
	return r
}

func (r *request) SetHeader(key, value string) Request {
	r.headers[key] = value
	return r
}

// SetResult decodes a successful JSON body into result.
func (r *request) SetResult(result any) Request {
	r.result = result
	return r
}

func (r *request) url(path string) string {
	if r.client.baseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(r.client.baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

func (r *request) encodeBody() (io.Reader, error) {
	switch b := r.body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		if _, ok := r.headers["Content-Type"]; !ok {
			r.headers["Content-Type"] = "application/json"
		}
		return bytes.NewReader(raw), nil
	}
}

func (r *request) do(ctx context.Context, method, path string) (*Response, error) {
	c := r.client
	fullURL := r.url(path)

	ctx, span := c.tracer.Start(ctx, "http.client "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("provider", c.providerName),
		),
	)
	defer span.End()

	start := time.Now()

	bodyReader, err := r.encodeBody()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if r.opts.logHeaders {
		r.recordHeaders(span, req.Header)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		r.recordTransportError(ctx, span, err, start)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.record(ctx, "transport", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	response := &Response{StatusCode: resp.StatusCode, Header: resp.Header, body: body}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if r.opts.errorHandler != nil {
		if herr := r.opts.errorHandler(resp.StatusCode, body); herr != nil {
			r.record(ctx, statusClass(resp.StatusCode), start)
			if r.opts.logBodyOnError {
				span.AddEvent("response.body", trace.WithAttributes(
					attribute.String("http.response.body", truncate(string(body), maxEventBody))))
			}
			span.RecordError(herr)
			span.SetStatus(codes.Error, herr.Error())
			return response, herr
		}
	}

	if r.result != nil && !response.IsError() && len(body) > 0 {
		if err := json.Unmarshal(body, r.result); err != nil {
			r.record(ctx, "decode", start)
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode body")
			return response, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	r.record(ctx, statusClass(resp.StatusCode), start)
	return response, nil
}

func (r *request) recordTransportError(ctx context.Context, span trace.Span, err error, start time.Time) {
	outcome := "transport"

	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		outcome = "cancelled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		outcome = "timeout"
	}

	span.SetAttributes(attribute.String("error.type", outcome))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.record(ctx, outcome, start)
}

func (r *request) record(ctx context.Context, outcome string, start time.Time) {
	attrs := []attribute.KeyValue{
		attribute.String("provider", r.client.providerName),
		attribute.String("outcome", outcome),
	}
	for _, l := range r.opts.labels {
		attrs = append(attrs, attribute.String(l.Key, l.Value))
	}

	set := metric.WithAttributes(attrs...)
	r.client.requests.Add(ctx, 1, set)
	r.client.duration.Record(ctx, float64(time.Since(start).Milliseconds()), set)
}

func (r *request) recordHeaders(span trace.Span, headers http.Header) {
	attrs := make([]attribute.KeyValue, 0, len(headers))
	for k, values := range headers {
		v := strings.Join(values, ",")
		if r.opts.redactHeaders[k] {
			v = "*****"
		}
		attrs = append(attrs, attribute.String("http.request.header."+strings.ToLower(k), v))
	}
	if len(attrs) > 0 {
		span.AddEvent("request.headers", trace.WithAttributes(attrs...))
	}
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
