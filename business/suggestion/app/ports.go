// Package app contains the suggestion requester and its provider port.
package app

import (
	"context"

	"github.com/fd1az/dox-arbitrage/business/suggestion/domain"
)

// Provider produces a suggestion for a validated request. Implementations may block
// and must honour ctx cancellation.
type Provider interface {
	Name() string
	Suggest(ctx context.Context, req domain.Request) (*domain.Suggestion, error)
}
