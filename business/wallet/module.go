// Package wallet implements the wallet connection bounded context.
package wallet

import (
	"context"

	"github.com/fd1az/dox-arbitrage/business/wallet/app"
	walletDI "github.com/fd1az/dox-arbitrage/business/wallet/di"
	"github.com/fd1az/dox-arbitrage/business/wallet/infra/injected"
	"github.com/fd1az/dox-arbitrage/business/wallet/infra/simulated"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/internal/config"
	"github.com/fd1az/dox-arbitrage/internal/di"
	"github.com/fd1az/dox-arbitrage/internal/logger"
	"github.com/fd1az/dox-arbitrage/internal/monolith"
)

// Module implements the wallet bounded context.
type Module struct{}

// RegisterServices registers all wallet services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, walletDI.Injected, func(sr di.ServiceRegistry) *injected.Requester {
		cfg := sr.Get("config").(*config.Config)
		return injected.New(cfg.Wallet.InjectedRPCURL)
	})

	di.RegisterToken(c, walletDI.Simulated, func(sr di.ServiceRegistry) app.AccountRequester {
		cfg := sr.Get("config").(*config.Config)
		return simulated.New(cfg.Wallet.SimulatedDelay)
	})

	di.RegisterToken(c, walletDI.Connector, func(sr di.ServiceRegistry) *app.Connector {
		reg := sr.Get("catalog").(*catalog.Registry)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewConnector(reg, walletDI.GetInjected(sr), walletDI.GetSimulated(sr), log)
	})

	return nil
}

// Startup registers the wallet health check.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	inj := walletDI.GetInjected(mono.Services())

	// a missing injected wallet is a user condition, not an outage
	mono.Health().RegisterCheck("wallet", func(ctx context.Context) (bool, string) {
		if inj.Available() {
			return true, "injected provider configured"
		}
		return true, "simulated wallets only"
	})

	mono.Logger().Info(ctx, "wallet module started",
		"injected", inj.Available(),
		"wallets", mono.Catalog().Count(catalog.KindWallet),
	)
	return nil
}
