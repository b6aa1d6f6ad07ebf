// Package di contains dependency injection tokens for the suggestion context.
package di

import (
	"github.com/fd1az/dox-arbitrage/business/suggestion/app"
	"github.com/fd1az/dox-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Requester = di.NewToken[*app.Requester]("suggestion.Requester")
)

// Private dependency tokens - internal to suggestion module
var (
	Provider = di.NewToken[app.Provider]("suggestion:provider")
)

func GetRequester(c di.ServiceRegistry) *app.Requester {
	return di.GetToken(c, Requester)
}

func GetProvider(c di.ServiceRegistry) app.Provider {
	return di.GetToken(c, Provider)
}
