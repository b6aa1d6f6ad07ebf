// Package di contains dependency injection tokens for the wallet context.
package di

import (
	"github.com/fd1az/dox-arbitrage/business/wallet/app"
	"github.com/fd1az/dox-arbitrage/business/wallet/infra/injected"
	"github.com/fd1az/dox-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Connector = di.NewToken[*app.Connector]("wallet.Connector")
)

// Private dependency tokens - internal to wallet module
var (
	Injected  = di.NewToken[*injected.Requester]("wallet:injected")
	Simulated = di.NewToken[app.AccountRequester]("wallet:simulated")
)

func GetConnector(c di.ServiceRegistry) *app.Connector {
	return di.GetToken(c, Connector)
}

func GetInjected(c di.ServiceRegistry) *injected.Requester {
	return di.GetToken(c, Injected)
}

func GetSimulated(c di.ServiceRegistry) app.AccountRequester {
	return di.GetToken(c, Simulated)
}
