// Package injected requests accounts from a wallet exposing an EIP-1193 style JSON-RPC endpoint.
package injected

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/fd1az/dox-arbitrage/business/wallet/domain"
)

// codeUserRejected is the EIP-1193 "user rejected the request" error code.
const codeUserRejected = 4001

// Requester calls eth_requestAccounts on the configured endpoint.
type Requester struct {
	url string
}

// New creates a Requester. An empty url means no wallet is installed.
func New(url string) *Requester {
	return &Requester{url: url}
}

// Available reports whether an endpoint is configured.
func (r *Requester) Available() bool {
	return r.url != ""
}

func (r *Requester) RequestAccounts(ctx context.Context) ([]string, error) {
	if !r.Available() {
		return nil, domain.ErrProviderNotFound
	}

	client, err := rpc.DialContext(ctx, r.url)
	if err != nil {
		return nil, fmt.Errorf("dial wallet: %w", err)
	}
	defer client.Close()

	var accounts []string
	if err := client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeUserRejected {
			return nil, domain.ErrUserRejected
		}
		return nil, err
	}
	return accounts, nil
}
