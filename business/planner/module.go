// Package planner implements the trade form bounded context: form state, fee estimates and submission.
package planner

import (
	"context"

	"github.com/fd1az/dox-arbitrage/business/planner/app"
	plannerDI "github.com/fd1az/dox-arbitrage/business/planner/di"
	"github.com/fd1az/dox-arbitrage/business/planner/infra"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/internal/config"
	"github.com/fd1az/dox-arbitrage/internal/di"
	"github.com/fd1az/dox-arbitrage/internal/logger"
	"github.com/fd1az/dox-arbitrage/internal/monolith"
)

// Module implements the planner bounded context.
type Module struct{}

// RegisterServices registers all planner services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Executor (private - internal dependency)
	di.RegisterToken(c, plannerDI.Executor, func(sr di.ServiceRegistry) app.Executor {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return infra.NewSimulatedExecutor(cfg.Planner.ExecutionDelay, log)
	})

	di.RegisterToken(c, plannerDI.Estimator, func(sr di.ServiceRegistry) *app.Estimator {
		return app.NewEstimator()
	})

	di.RegisterToken(c, plannerDI.Reporter, func(sr di.ServiceRegistry) *infra.ConsoleReporter {
		reg := sr.Get("catalog").(*catalog.Registry)
		return infra.NewConsoleReporter(reg)
	})

	// Register Session (public - one per process)
	di.RegisterToken(c, plannerDI.Session, func(sr di.ServiceRegistry) *app.Session {
		reg := sr.Get("catalog").(*catalog.Registry)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewSession(reg, plannerDI.GetEstimator(sr), plannerDI.GetExecutor(sr), log)
	})

	return nil
}

// Startup initializes the planner module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	session := plannerDI.GetSession(mono.Services())
	mono.Logger().Info(ctx, "planner module started",
		"session_id", session.ID(),
		"networks", mono.Catalog().Count(catalog.KindNetwork),
	)
	return nil
}
