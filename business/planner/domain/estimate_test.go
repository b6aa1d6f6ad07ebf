package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/dox-arbitrage/internal/catalog"
)

func amt(s string) decimal.NullDecimal {
	return Amount(decimal.RequireFromString(s))
}

func TestEstimate(t *testing.T) {
	base := DefaultFormState(catalog.DefaultRegistry())

	tests := []struct {
		name        string
		mutate      func(f *FormState)
		wantTrade   string
		wantShowGas bool
		wantGas     string
		wantProfit  string
	}{
		{
			name: "ethereum_uniswap_to_sushiswap",
			mutate: func(f *FormState) {
				f.AmountFrom = amt("1000")
			},
			wantTrade:  "1000",
			wantGas:    "53", // 50 + 1000*0.003
			wantProfit: "-3", // 1000*0.05 - 53
		},
		{
			name: "polygon_sushiswap_to_curve",
			mutate: func(f *FormState) {
				f.Network = "polygon"
				f.DEXFrom = "sushiswap"
				f.DEXTo = "curve"
				f.AmountFrom = amt("2000")
			},
			wantTrade:  "2000",
			wantGas:    "5",  // 1 + 2000*0.002
			wantProfit: "55", // 2000*0.03 - 5
		},
		{
			name: "amount_to_used_when_amount_from_absent",
			mutate: func(f *FormState) {
				f.Network = "arbitrum"
				f.AmountTo = amt("100")
			},
			wantTrade:  "100",
			wantGas:    "5.3", // 5 + 100*0.003
			wantProfit: "-0.3",
		},
		{
			name: "non_positive_amount_from_falls_through",
			mutate: func(f *FormState) {
				f.AmountFrom = amt("0")
				f.AmountTo = amt("200")
			},
			wantTrade:  "200",
			wantGas:    "50.6",
			wantProfit: "-40.6",
		},
		{
			name: "budget_only_subtracts_budget",
			mutate: func(f *FormState) {
				f.GasBudget = amt("20")
			},
			wantTrade:   "0",
			wantShowGas: true,
			wantGas:     "0",
			wantProfit:  "-20",
		},
		{
			name:        "nothing_entered",
			mutate:      func(f *FormState) {},
			wantTrade:   "0",
			wantShowGas: true,
			wantGas:     "0",
			wantProfit:  "0",
		},
		{
			name: "budget_ignored_once_amounts_exist",
			mutate: func(f *FormState) {
				f.AmountFrom = amt("1000")
				f.GasBudget = amt("999")
			},
			wantTrade:  "1000",
			wantGas:    "53",
			wantProfit: "-3",
		},
		{
			name: "same_coin_has_no_profit",
			mutate: func(f *FormState) {
				f.CoinTo = f.CoinFrom
				f.AmountFrom = amt("1000")
			},
			wantTrade:  "1000",
			wantGas:    "53",
			wantProfit: "-53",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base
			tt.mutate(&f)

			d := Estimate(f)

			if !d.TradeAmount.Equal(decimal.RequireFromString(tt.wantTrade)) {
				t.Errorf("TradeAmount = %s, want %s", d.TradeAmount, tt.wantTrade)
			}
			if d.ShowGasInput != tt.wantShowGas {
				t.Errorf("ShowGasInput = %v, want %v", d.ShowGasInput, tt.wantShowGas)
			}
			if !d.GasFeeEstimate.Equal(decimal.RequireFromString(tt.wantGas)) {
				t.Errorf("GasFeeEstimate = %s, want %s", d.GasFeeEstimate, tt.wantGas)
			}
			if !d.ProfitEstimate.Equal(decimal.RequireFromString(tt.wantProfit)) {
				t.Errorf("ProfitEstimate = %s, want %s", d.ProfitEstimate, tt.wantProfit)
			}
		})
	}
}

func TestEstimate_Formatting(t *testing.T) {
	f := DefaultFormState(catalog.DefaultRegistry())
	f.AmountFrom = amt("1000")

	d := Estimate(f)

	if got := FormatUSD(d.GasFeeEstimate); got != "$53.00" {
		t.Errorf("gas = %q, want $53.00", got)
	}
	if got := FormatUSD(d.ProfitEstimate); got != "$-3.00" {
		t.Errorf("profit = %q, want $-3.00", got)
	}
}

func TestEstimate_Idempotent(t *testing.T) {
	reg := catalog.DefaultRegistry()
	amounts := []decimal.NullDecimal{{}, amt("0"), amt("-1"), amt("0.5"), amt("1500")}

	for _, network := range reg.Options(catalog.KindNetwork) {
		for _, from := range amounts {
			for _, to := range amounts {
				f := DefaultFormState(reg)
				f.Network = network.Value
				f.AmountFrom = from
				f.AmountTo = to
				f.GasBudget = amt("12")

				first := Estimate(f)
				second := Estimate(f)
				if !sameDisplay(first, second) {
					t.Fatalf("Estimate not idempotent for %+v: %+v vs %+v", f, first, second)
				}

				wantShow := !Positive(from) && !Positive(to)
				if first.ShowGasInput != wantShow {
					t.Errorf("ShowGasInput = %v for from=%v to=%v", first.ShowGasInput, from, to)
				}
				if first.ShowGasInput && !first.GasFeeEstimate.IsZero() {
					t.Errorf("gas estimate must be zero while the budget input is shown")
				}
			}
		}
	}
}

func sameDisplay(a, b DerivedDisplay) bool {
	return a.TradeAmount.Equal(b.TradeAmount) &&
		a.ShowGasInput == b.ShowGasInput &&
		a.GasFeeEstimate.Equal(b.GasFeeEstimate) &&
		a.PriceDiff.Equal(b.PriceDiff) &&
		a.GrossProfit.Equal(b.GrossProfit) &&
		a.FeeForProfit.Equal(b.FeeForProfit) &&
		a.ProfitEstimate.Equal(b.ProfitEstimate) &&
		a.FromSuggestion == b.FromSuggestion
}
