package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	planner "github.com/fd1az/dox-arbitrage/business/planner/domain"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
)

func TestNewRequest_GasBudgetSource(t *testing.T) {
	reg := catalog.DefaultRegistry()
	liquidity := decimal.NewFromInt(100000)

	t.Run("budget_wins_when_positive", func(t *testing.T) {
		form := planner.DefaultFormState(reg)
		form.GasBudget = planner.Amount(decimal.NewFromInt(25))
		req := NewRequest(form, planner.Estimate(form), liquidity)
		assert.True(t, req.GasBudget.Equal(decimal.NewFromInt(25)))
	})

	t.Run("falls_back_to_gas_estimate", func(t *testing.T) {
		form := planner.DefaultFormState(reg)
		form.AmountFrom = planner.Amount(decimal.NewFromInt(1000))
		req := NewRequest(form, planner.Estimate(form), liquidity)
		assert.True(t, req.GasBudget.Equal(decimal.NewFromInt(53)), "got %s", req.GasBudget)
	})
}

func TestNewRequest_Fields(t *testing.T) {
	reg := catalog.DefaultRegistry()
	form := planner.DefaultFormState(reg)
	form.GasBudget = planner.Amount(decimal.NewFromInt(10))

	req := NewRequest(form, planner.Estimate(form), decimal.NewFromInt(5000))
	assert.Equal(t, form.TokenPair(), req.TokenPair)
	assert.Equal(t, []string{form.DEXFrom, form.DEXTo}, req.DEXs)
	assert.Equal(t, form.BorrowingProtocol, req.BorrowingProtocol)
	assert.Equal(t, form.Network, req.Network)
	assert.NoError(t, req.Validate())

	form.DEXTo = ""
	req = NewRequest(form, planner.Estimate(form), decimal.NewFromInt(5000))
	assert.Equal(t, []string{form.DEXFrom}, req.DEXs)
}

func TestRequest_Validate(t *testing.T) {
	valid := func() Request {
		return Request{
			GasBudget:          decimal.NewFromInt(10),
			AvailableLiquidity: decimal.NewFromInt(1000),
			TokenPair:          "USDT/USDC",
			DEXs:               []string{"uniswap"},
			BorrowingProtocol:  "aave-v3",
			Network:            "ethereum",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"valid", func(r *Request) {}, nil},
		{"zero_budget", func(r *Request) { r.GasBudget = decimal.Zero }, ErrNoGasBudget},
		{"negative_liquidity", func(r *Request) { r.AvailableLiquidity = decimal.NewFromInt(-1) }, ErrNoLiquidity},
		{"pair_without_slash", func(r *Request) { r.TokenPair = "USDT" }, ErrInvalidPair},
		{"pair_missing_side", func(r *Request) { r.TokenPair = "USDT/" }, ErrInvalidPair},
		{"pair_three_parts", func(r *Request) { r.TokenPair = "A/B/C" }, ErrInvalidPair},
		{"no_dexs", func(r *Request) { r.DEXs = nil }, ErrNoDEXs},
		{"no_protocol", func(r *Request) { r.BorrowingProtocol = "" }, ErrMissingProtocol},
		{"no_network", func(r *Request) { r.Network = "" }, ErrMissingNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := r.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSuggestion_ValidateAndApply(t *testing.T) {
	s := Suggestion{
		SuggestedAmount:     decimal.NewFromInt(2000),
		EstimatedProfit:     decimal.NewFromInt(80),
		StrategyExplanation: "Buy low on Uniswap, sell on Sushiswap.",
	}
	require.NoError(t, s.Validate())

	applied := s.Applied()
	assert.True(t, applied.Amount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, applied.Profit.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, s.StrategyExplanation, applied.Explanation)

	s.SuggestedAmount = decimal.Zero
	assert.ErrorIs(t, s.Validate(), ErrNonPositiveAmount)

	s.SuggestedAmount = decimal.New(1, 99999999)
	assert.ErrorIs(t, s.Validate(), ErrAmountOutOfRange)

	s.SuggestedAmount = decimal.NewFromInt(1)
	s.EstimatedProfit = decimal.New(-1, 99999999)
	assert.ErrorIs(t, s.Validate(), ErrAmountOutOfRange)

	s.EstimatedProfit = decimal.NewFromInt(80)
	s.StrategyExplanation = "  "
	assert.ErrorIs(t, s.Validate(), ErrEmptyExplanation)
}

func TestSuggestionError(t *testing.T) {
	cause := errors.New("boom")
	err := NewSuggestionError("", cause)
	assert.Equal(t, DefaultErrorMessage, err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")

	plain := NewSuggestionError("Model API error: overloaded", nil)
	assert.Equal(t, "suggestion: Model API error: overloaded", plain.Error())
	assert.NoError(t, plain.Unwrap())
}
