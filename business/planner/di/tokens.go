// Package di contains dependency injection tokens for the planner context.
package di

import (
	"github.com/fd1az/dox-arbitrage/business/planner/app"
	"github.com/fd1az/dox-arbitrage/business/planner/infra"
	"github.com/fd1az/dox-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Session   = di.NewToken[*app.Session]("planner.Session")
	Estimator = di.NewToken[*app.Estimator]("planner.Estimator")
	Reporter  = di.NewToken[*infra.ConsoleReporter]("planner.Reporter")
)

// Private dependency tokens - internal to planner module
var (
	Executor = di.NewToken[app.Executor]("planner:executor")
)

// Helper functions for type-safe access
func GetSession(c di.ServiceRegistry) *app.Session {
	return di.GetToken(c, Session)
}

func GetEstimator(c di.ServiceRegistry) *app.Estimator {
	return di.GetToken(c, Estimator)
}

func GetReporter(c di.ServiceRegistry) *infra.ConsoleReporter {
	return di.GetToken(c, Reporter)
}

func GetExecutor(c di.ServiceRegistry) app.Executor {
	return di.GetToken(c, Executor)
}
