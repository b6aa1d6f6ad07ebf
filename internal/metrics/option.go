package metrics

// Provider selects a metric reader.
type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OTLPProvider       Provider = "otlp"
)

// ReaderConfig describes one metric reader.
type ReaderConfig struct {
	Provider Provider
	// Endpoint is a full URL for OTLP; an http:// scheme disables TLS.
	Endpoint string
	Headers  map[string]string
}

// NewOTLPConfig pushes metrics to an OpenTelemetry collector over gRPC.
func NewOTLPConfig(endpoint string, headers map[string]string) ReaderConfig {
	return ReaderConfig{
		Provider: OTLPProvider,
		Endpoint: endpoint,
		Headers:  headers,
	}
}

// NewPrometheusConfig exposes metrics for scraping through Server.
func NewPrometheusConfig() ReaderConfig {
	return ReaderConfig{Provider: PrometheusProvider}
}

type Config struct {
	ServiceName string
	Readers     []ReaderConfig
}

type OptionFn func(config Config) Config

func WithReader(reader ReaderConfig) OptionFn {
	return func(config Config) Config {
		config.Readers = append(config.Readers, reader)
		return config
	}
}

func WithServiceName(serviceName string) OptionFn {
	return func(config Config) Config {
		config.ServiceName = serviceName
		return config
	}
}
