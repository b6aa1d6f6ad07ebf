// Package domain contains the wallet connection state and address formatting.
package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ProviderName is the display name of a wallet provider.
type ProviderName string

const (
	MetaMask      ProviderName = "MetaMask"
	WalletConnect ProviderName = "WalletConnect"
	Coinbase      ProviderName = "Coinbase Wallet"
)

// StatusType is the kind of status line shown on the login screen.
type StatusType string

const (
	StatusNone       StatusType = ""
	StatusConnecting StatusType = "connecting"
	StatusConnected  StatusType = "connected"
	StatusError      StatusType = "error"
)

// Sentinel errors returned by account requesters.
var (
	// ErrProviderNotFound means the wallet capability is absent, not that a request failed.
	ErrProviderNotFound = errors.New("wallet provider not found")
	ErrNoAccounts       = errors.New("wallet returned no accounts")
	ErrUserRejected     = errors.New("user rejected connection")
)

// State is the wallet connection as seen by the UI.
type State struct {
	Provider ProviderName `json:"provider,omitempty"`
	Status   StatusType   `json:"status"`
	Message  string       `json:"message,omitempty"`
	Address  string       `json:"address,omitempty"`
}

// Connected reports whether an account is available.
func (s State) Connected() bool {
	return s.Status == StatusConnected && s.Address != ""
}

// DisplayAddress returns the address as shown in the header.
func (s State) DisplayAddress() string {
	return DisplayAddress(s.Address)
}

// Connecting returns the state while a request is pending.
func Connecting(p ProviderName) State {
	return State{Provider: p, Status: StatusConnecting, Message: fmt.Sprintf("Connecting to %s...", p)}
}

// ConnectedTo returns the state after a successful request.
func ConnectedTo(p ProviderName, address string) State {
	return State{Provider: p, Status: StatusConnected, Message: fmt.Sprintf("Connected to %s", p), Address: address}
}

// Failed returns the state after a failed request. A missing provider gets the install hint.
func Failed(p ProviderName, err error) State {
	if errors.Is(err, ErrProviderNotFound) {
		return State{Provider: p, Status: StatusError, Message: fmt.Sprintf("%s not found. Please install the extension.", p)}
	}

	reason := "User rejected connection."
	if err != nil && !errors.Is(err, ErrUserRejected) {
		reason = err.Error()
	}
	return State{Provider: p, Status: StatusError, Message: fmt.Sprintf("Failed to connect to %s: %s", p, reason)}
}

// DisplayAddress checksums valid hex addresses and shortens anything longer than 20 characters
// to its first 6 and last 4 characters.
func DisplayAddress(addr string) string {
	if common.IsHexAddress(addr) {
		addr = common.HexToAddress(addr).Hex()
	}
	if len(addr) > 20 {
		return addr[:6] + "..." + addr[len(addr)-4:]
	}
	return addr
}
