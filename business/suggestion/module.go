// Package suggestion implements the smart suggestion bounded context.
package suggestion

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker/v2"

	"github.com/fd1az/dox-arbitrage/business/suggestion/app"
	suggestionDI "github.com/fd1az/dox-arbitrage/business/suggestion/di"
	"github.com/fd1az/dox-arbitrage/business/suggestion/infra/llm"
	"github.com/fd1az/dox-arbitrage/business/suggestion/infra/stub"
	"github.com/fd1az/dox-arbitrage/internal/config"
	"github.com/fd1az/dox-arbitrage/internal/di"
	"github.com/fd1az/dox-arbitrage/internal/logger"
	"github.com/fd1az/dox-arbitrage/internal/monolith"
)

// Module implements the suggestion bounded context.
type Module struct{}

// RegisterServices registers all suggestion services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	cfg := c.Get("config").(*config.Config)

	var provider app.Provider
	switch cfg.Suggestion.Provider {
	case config.ProviderAnthropic:
		log := c.Get("logger").(logger.LoggerInterface)
		p, err := llm.New(llm.Config{
			Endpoint:        cfg.Suggestion.Endpoint,
			APIKey:          cfg.Suggestion.APIKey,
			Model:           cfg.Suggestion.Model,
			MaxTokens:       cfg.Suggestion.MaxTokens,
			Timeout:         cfg.Suggestion.Timeout,
			BreakerFailures: cfg.Suggestion.BreakerFailures,
			BreakerCooldown: cfg.Suggestion.BreakerCooldown,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to create suggestion provider: %w", err)
		}
		provider = p
	default:
		provider = stub.New(cfg.Suggestion.StubDelay)
	}

	// Register Provider (private - built eagerly so config errors surface at startup)
	di.RegisterToken(c, suggestionDI.Provider, func(sr di.ServiceRegistry) app.Provider {
		return provider
	})

	// Register Requester (public - used by the UI and CLI)
	di.RegisterToken(c, suggestionDI.Requester, func(sr di.ServiceRegistry) *app.Requester {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewRequester(suggestionDI.GetProvider(sr), app.RequesterConfig{
			Timeout:           cfg.Suggestion.Timeout,
			Liquidity:         cfg.Suggestion.DefaultLiquidityDecimal(),
			RequestsPerMinute: cfg.Suggestion.RequestsPerMinute,
		}, log)
	})

	return nil
}

// Startup registers the suggestion health check.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	requester := suggestionDI.GetRequester(mono.Services())
	provider := suggestionDI.GetProvider(mono.Services())

	mono.Health().RegisterCheck("suggestion", func(ctx context.Context) (bool, string) {
		if p, ok := provider.(*llm.Provider); ok {
			state := p.BreakerState()
			return state != gobreaker.StateOpen, "circuit " + state.String()
		}
		return true, provider.Name()
	})

	mono.Logger().Info(ctx, "suggestion module started",
		"provider", requester.ProviderName(),
		"liquidity", requester.Liquidity().String(),
	)
	return nil
}
