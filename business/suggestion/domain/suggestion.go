// Package domain contains the smart suggestion request and result types.
package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	planner "github.com/fd1az/dox-arbitrage/business/planner/domain"
)

// Request is the input of a smart suggestion.
type Request struct {
	GasBudget          decimal.Decimal `json:"gasBudget"`
	AvailableLiquidity decimal.Decimal `json:"availableLiquidity"`
	TokenPair          string          `json:"tokenPair"`
	DEXs               []string        `json:"dexs"`
	BorrowingProtocol  string          `json:"borrowingProtocol"`
	Network            string          `json:"network"`
}

// Suggestion is the provider's answer.
type Suggestion struct {
	SuggestedAmount     decimal.Decimal `json:"suggestedAmount"`
	EstimatedProfit     decimal.Decimal `json:"estimatedProfit"`
	StrategyExplanation string          `json:"strategyExplanation"`
}

// Sentinel errors for request and response checks.
var (
	ErrNoGasBudget     = errors.New("a positive gas budget or gas fee estimate is required")
	ErrNoLiquidity     = errors.New("available liquidity must be positive")
	ErrInvalidPair     = errors.New("token pair must look like FROM/TO")
	ErrNoDEXs          = errors.New("at least one exchange is required")
	ErrMissingProtocol = errors.New("borrowing protocol is required")
	ErrMissingNetwork  = errors.New("network is required")

	ErrNonPositiveAmount = errors.New("suggested amount must be positive")
	ErrEmptyExplanation  = errors.New("strategy explanation is empty")
	ErrAmountOutOfRange  = errors.New("suggested amount is out of range")
)

// NewRequest builds a request from the form. The gas budget is the user's budget when positive,
// otherwise the current gas fee estimate.
func NewRequest(form planner.FormState, display planner.DerivedDisplay, liquidity decimal.Decimal) Request {
	budget := display.GasFeeEstimate
	if planner.Positive(form.GasBudget) {
		budget = form.GasBudget.Decimal
	}

	var dexs []string
	for _, d := range []string{form.DEXFrom, form.DEXTo} {
		if d != "" {
			dexs = append(dexs, d)
		}
	}

	return Request{
		GasBudget:          budget,
		AvailableLiquidity: liquidity,
		TokenPair:          form.TokenPair(),
		DEXs:               dexs,
		BorrowingProtocol:  form.BorrowingProtocol,
		Network:            form.Network,
	}
}

// Validate checks the request before it is sent.
func (r Request) Validate() error {
	switch {
	case !r.GasBudget.IsPositive():
		return ErrNoGasBudget
	case !r.AvailableLiquidity.IsPositive():
		return ErrNoLiquidity
	case !validPair(r.TokenPair):
		return ErrInvalidPair
	case len(r.DEXs) == 0:
		return ErrNoDEXs
	case r.BorrowingProtocol == "":
		return ErrMissingProtocol
	case r.Network == "":
		return ErrMissingNetwork
	}
	return nil
}

func validPair(pair string) bool {
	from, to, ok := strings.Cut(pair, "/")
	return ok && from != "" && to != "" && !strings.Contains(to, "/")
}

// Validate checks a provider answer before it reaches the form.
func (s Suggestion) Validate() error {
	if !s.SuggestedAmount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !planner.AmountInRange(s.SuggestedAmount) || !planner.AmountInRange(s.EstimatedProfit) {
		return ErrAmountOutOfRange
	}
	if strings.TrimSpace(s.StrategyExplanation) == "" {
		return ErrEmptyExplanation
	}
	return nil
}

// Applied converts the suggestion into the form's representation.
func (s Suggestion) Applied() planner.AppliedSuggestion {
	return planner.AppliedSuggestion{
		Amount:      s.SuggestedAmount,
		Profit:      s.EstimatedProfit,
		Explanation: s.StrategyExplanation,
	}
}
