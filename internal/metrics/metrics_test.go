package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestCounterAndHistogram_NoopMeter(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	c := Counter(meter, "things_total", "Things")
	require.NotNil(t, c)
	c.Add(context.Background(), 1)

	h := Histogram(meter, "thing_latency_ms", "Thing latency", "ms")
	require.NotNil(t, h)
	h.Record(context.Background(), 12.5)
}

func TestPrometheusEndpoint(t *testing.T) {
	prev := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	mp, err := NewMetricProvider(context.Background(),
		WithServiceName("dox-test"),
		WithReader(NewPrometheusConfig()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { mp.Shutdown(context.Background()) })

	Counter(mp.Meter("test"), "dox_test_events_total", "Test events").Add(context.Background(), 3)

	srv := httptest.NewServer(NewServer(0).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "dox_test_events_total")
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(0).Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

func TestNewMetricProvider_UnknownReader(t *testing.T) {
	_, err := NewMetricProvider(context.Background(), WithReader(ReaderConfig{Provider: "statsd"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statsd")
}
