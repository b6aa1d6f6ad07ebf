package app

import "context"

// AccountRequester asks a wallet for its accounts.
// Implementations return domain.ErrProviderNotFound when the wallet is not available at all.
type AccountRequester interface {
	RequestAccounts(ctx context.Context) ([]string, error)
}
