package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Phase is the submission state of a session.
type Phase int

const (
	// PhaseIdle accepts edits and submission.
	PhaseIdle Phase = iota
	// PhaseSubmitting has one execution in flight; submit is disabled.
	PhaseSubmitting
	// PhaseExecuted shows the result; the next submit resets the form.
	PhaseExecuted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseExecuted:
		return "executed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ActionLabel is the text of the primary button in this phase.
func (p Phase) ActionLabel() string {
	switch p {
	case PhaseSubmitting:
		return "Processing..."
	case PhaseExecuted:
		return "Reset"
	default:
		return "Execute Arbitrage Trade"
	}
}

// Execution is the receipt of a processed trade.
type Execution struct {
	ID          string          `json:"id"`
	Network     string          `json:"network"`
	Amount      decimal.Decimal `json:"amount"`
	Coin        string          `json:"coin"`
	CompletedAt time.Time       `json:"completedAt"`
}

// NewExecution builds a receipt from the submitted form.
// The amount is amountFrom when set, else amountTo; the coin is coinFrom, else coinTo.
func NewExecution(id string, f FormState, at time.Time) *Execution {
	amount := decimal.Zero
	switch {
	case f.AmountFrom.Valid && !f.AmountFrom.Decimal.IsZero():
		amount = f.AmountFrom.Decimal
	case f.AmountTo.Valid:
		amount = f.AmountTo.Decimal
	}

	coin := f.CoinFrom
	if coin == "" {
		coin = f.CoinTo
	}

	return &Execution{
		ID:          id,
		Network:     f.Network,
		Amount:      amount,
		Coin:        coin,
		CompletedAt: at,
	}
}

// Message is the confirmation shown to the user.
func (e *Execution) Message() string {
	return fmt.Sprintf("Trade for %s %s processed.", e.Amount.String(), e.Coin)
}

// AppliedSuggestion is a smart suggestion the user accepted into the form.
type AppliedSuggestion struct {
	Amount      decimal.Decimal `json:"amount"`
	Profit      decimal.Decimal `json:"profit"`
	Explanation string          `json:"explanation"`
}
