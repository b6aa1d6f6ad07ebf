// Package ui provides the Bubble Tea TUI for the arbitrage planner.
package ui

import (
	plannerDomain "github.com/fd1az/dox-arbitrage/business/planner/domain"
	suggestionDomain "github.com/fd1az/dox-arbitrage/business/suggestion/domain"
	walletDomain "github.com/fd1az/dox-arbitrage/business/wallet/domain"
)

// Message types for TUI updates

// WalletResultMsg is sent when a wallet connection attempt finishes.
type WalletResultMsg struct {
	State walletDomain.State
	Err   error
}

// SuggestionResultMsg is sent when a smart suggestion request finishes.
type SuggestionResultMsg struct {
	Suggestion *suggestionDomain.Suggestion
	Err        error
}

// ExecutionResultMsg is sent when a submitted trade finishes processing.
type ExecutionResultMsg struct {
	Execution *plannerDomain.Execution
	Err       error
}

// TickMsg is sent periodically to expire toasts.
type TickMsg struct{}
