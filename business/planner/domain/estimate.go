package domain

import (
	"github.com/shopspring/decimal"
)

// DerivedDisplay is computed from a FormState and never edited directly.
type DerivedDisplay struct {
	TradeAmount decimal.Decimal `json:"tradeAmount"`
	// ShowGasInput is true when the user has to supply a gas budget instead of amounts.
	ShowGasInput   bool            `json:"showGasInput"`
	GasFeeEstimate decimal.Decimal `json:"gasFeeEstimate"`
	PriceDiff      decimal.Decimal `json:"priceDiff"`
	GrossProfit    decimal.Decimal `json:"grossProfit"`
	// FeeForProfit is the cost subtracted from the gross: the budget or the estimate.
	FeeForProfit   decimal.Decimal `json:"feeForProfit"`
	ProfitEstimate decimal.Decimal `json:"profitEstimate"`
	// FromSuggestion marks a profit taken from a smart suggestion instead of the formula.
	FromSuggestion bool `json:"fromSuggestion,omitempty"`
}

// Estimate derives the display in a fixed order: trade amount, gas fee, then profit.
func Estimate(f FormState) DerivedDisplay {
	d := DerivedDisplay{
		TradeAmount:    f.TradeAmount(),
		ShowGasInput:   f.NeedsGasBudget(),
		GasFeeEstimate: decimal.Zero,
	}

	if !d.ShowGasInput {
		d.GasFeeEstimate = GasFee(f.Network, d.TradeAmount, f.DEXFrom, f.DEXTo)
	}

	d.PriceDiff = PriceDiff(f.CoinFrom, f.CoinTo, f.DEXFrom, f.DEXTo)
	d.GrossProfit = d.TradeAmount.Mul(d.PriceDiff)

	if d.ShowGasInput {
		d.FeeForProfit = decimal.Zero
		if f.GasBudget.Valid {
			d.FeeForProfit = f.GasBudget.Decimal
		}
	} else {
		d.FeeForProfit = d.GasFeeEstimate
	}

	d.ProfitEstimate = d.GrossProfit.Sub(d.FeeForProfit)
	return d
}

// FormatUSD renders a value with two decimals and a leading dollar sign, e.g. "$-3.00".
func FormatUSD(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}

// Profitable reports whether the estimate is above zero.
func (d DerivedDisplay) Profitable() bool {
	return d.ProfitEstimate.IsPositive()
}
