// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Suggestion providers
const (
	ProviderStub      = "stub"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Planner    PlannerConfig    `mapstructure:"planner"`
	Suggestion SuggestionConfig `mapstructure:"suggestion"`
	Wallet     WalletConfig     `mapstructure:"wallet"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Health     HealthConfig     `mapstructure:"health"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	// LogFile receives logs in TUI mode, where stderr is owned by the terminal UI.
	LogFile string `mapstructure:"log_file"`
}

// PlannerConfig holds trade form settings.
type PlannerConfig struct {
	ExecutionDelay time.Duration `mapstructure:"execution_delay"`
}

// SuggestionConfig holds the smart suggestion provider settings.
type SuggestionConfig struct {
	Provider          string        `mapstructure:"provider"`
	Endpoint          string        `mapstructure:"endpoint"`
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	Timeout           time.Duration `mapstructure:"timeout"`
	DefaultLiquidity  float64       `mapstructure:"default_liquidity"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	BreakerFailures   uint32        `mapstructure:"breaker_failures"`
	BreakerCooldown   time.Duration `mapstructure:"breaker_cooldown"`
	StubDelay         time.Duration `mapstructure:"stub_delay"`
}

// DefaultLiquidityDecimal returns the available liquidity sent with each request.
func (c *SuggestionConfig) DefaultLiquidityDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.DefaultLiquidity)
}

// WalletConfig holds wallet provider settings.
type WalletConfig struct {
	// InjectedRPCURL is the JSON-RPC endpoint of the injected wallet. Empty means not installed.
	InjectedRPCURL string        `mapstructure:"injected_rpc_url"`
	SimulatedDelay time.Duration `mapstructure:"simulated_delay"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	TraceProvider  string `mapstructure:"trace_provider"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// HealthConfig holds the health endpoint settings.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("DOX")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "DOX_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "DOX_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "DOX_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("app.log_file", "DOX_LOG_FILE")

	// Planner
	v.BindEnv("planner.execution_delay", "DOX_EXECUTION_DELAY")

	// Suggestion
	v.BindEnv("suggestion.provider", "DOX_SUGGESTION_PROVIDER")
	v.BindEnv("suggestion.endpoint", "DOX_SUGGESTION_ENDPOINT", "ANTHROPIC_BASE_URL")
	v.BindEnv("suggestion.api_key", "DOX_SUGGESTION_API_KEY", "ANTHROPIC_API_KEY")
	v.BindEnv("suggestion.model", "DOX_SUGGESTION_MODEL", "ANTHROPIC_MODEL")
	v.BindEnv("suggestion.timeout", "DOX_SUGGESTION_TIMEOUT")
	v.BindEnv("suggestion.default_liquidity", "DOX_DEFAULT_LIQUIDITY")

	// Wallet
	v.BindEnv("wallet.injected_rpc_url", "DOX_WALLET_RPC_URL", "WALLET_RPC_URL")
	v.BindEnv("wallet.simulated_delay", "DOX_WALLET_DELAY")

	// Telemetry
	v.BindEnv("telemetry.enabled", "DOX_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "DOX_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.trace_provider", "DOX_OTEL_TRACE_PROVIDER")
	v.BindEnv("telemetry.otlp_endpoint", "DOX_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("telemetry.otlp_headers", "DOX_OTEL_HEADERS", "OTEL_EXPORTER_OTLP_HEADERS")

	// Health
	v.BindEnv("health.enabled", "DOX_HEALTH_ENABLED")
	v.BindEnv("health.port", "DOX_HEALTH_PORT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "dox-arbitrage")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("planner.execution_delay", "1500ms")

	v.SetDefault("suggestion.provider", ProviderStub)
	v.SetDefault("suggestion.endpoint", "https://api.anthropic.com")
	v.SetDefault("suggestion.model", "claude-sonnet-4-5")
	v.SetDefault("suggestion.max_tokens", 1024)
	v.SetDefault("suggestion.timeout", "30s")
	v.SetDefault("suggestion.default_liquidity", 100000)
	v.SetDefault("suggestion.requests_per_minute", 10)
	v.SetDefault("suggestion.breaker_failures", 3)
	v.SetDefault("suggestion.breaker_cooldown", "30s")
	v.SetDefault("suggestion.stub_delay", "800ms")

	v.SetDefault("wallet.simulated_delay", "1500ms")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "dox-arbitrage")
	v.SetDefault("telemetry.trace_provider", "zipkin")
	v.SetDefault("telemetry.prometheus_port", 9090)

	v.SetDefault("health.enabled", false)
	v.SetDefault("health.port", 8081)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Suggestion.Provider {
	case ProviderStub:
	case ProviderAnthropic:
		if c.Suggestion.APIKey == "" {
			return fmt.Errorf("suggestion.api_key is required for provider %q", ProviderAnthropic)
		}
		if c.Suggestion.Model == "" {
			return fmt.Errorf("suggestion.model is required for provider %q", ProviderAnthropic)
		}
		if err := validateURL("suggestion.endpoint", c.Suggestion.Endpoint, "http", "https"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown suggestion.provider: %q", c.Suggestion.Provider)
	}
	if c.Suggestion.Timeout <= 0 {
		return fmt.Errorf("suggestion.timeout must be positive")
	}
	if c.Suggestion.DefaultLiquidity <= 0 {
		return fmt.Errorf("suggestion.default_liquidity must be positive")
	}
	if c.Suggestion.RequestsPerMinute <= 0 {
		return fmt.Errorf("suggestion.requests_per_minute must be positive")
	}
	if c.Planner.ExecutionDelay < 0 {
		return fmt.Errorf("planner.execution_delay cannot be negative")
	}
	if c.Wallet.SimulatedDelay < 0 {
		return fmt.Errorf("wallet.simulated_delay cannot be negative")
	}
	if c.Wallet.InjectedRPCURL != "" {
		if err := validateURL("wallet.injected_rpc_url", c.Wallet.InjectedRPCURL, "http", "https", "ws", "wss"); err != nil {
			return err
		}
	}
	if c.Health.Enabled && (c.Health.Port <= 0 || c.Health.Port > 65535) {
		return fmt.Errorf("invalid health.port: %d", c.Health.Port)
	}
	return nil
}

func validateURL(key, raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %q", key, raw)
}
