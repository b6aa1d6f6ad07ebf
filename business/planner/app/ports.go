// Package app contains the trade form session and the port definitions for the planner context.
package app

import (
	"context"

	"github.com/fd1az/dox-arbitrage/business/planner/domain"
)

// Executor carries out a validated trade.
type Executor interface {
	// Execute processes the form and returns a receipt. It must honour ctx cancellation.
	Execute(ctx context.Context, form domain.FormState) (*domain.Execution, error)
}

// Reporter renders an estimate for a non-interactive caller.
type Reporter interface {
	Report(form domain.FormState, display domain.DerivedDisplay) error
}
