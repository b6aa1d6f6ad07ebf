package domain

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/dox-arbitrage/internal/catalog"
)

// Flat network fees in USD. Networks not listed cost defaultNetworkFee.
var networkFees = map[string]decimal.Decimal{
	catalog.NetworkEthereum: decimal.NewFromInt(50),
	catalog.NetworkArbitrum: decimal.NewFromInt(5),
	catalog.NetworkOptimism: decimal.NewFromInt(5),
	catalog.NetworkPolygon:  decimal.NewFromInt(1),
}

var (
	defaultNetworkFee = decimal.NewFromInt(10)

	// Swap fee rates applied to the trade amount.
	uniswapFeeRate = decimal.RequireFromString("0.003")
	defaultFeeRate = decimal.RequireFromString("0.002")

	// Assumed price spread between the two venues.
	uniswapSushiSpread = decimal.RequireFromString("0.05")
	defaultSpread      = decimal.RequireFromString("0.03")
)

// NetworkFee is the flat cost of transacting on a network.
func NetworkFee(network string) decimal.Decimal {
	if fee, ok := networkFees[network]; ok {
		return fee
	}
	return defaultNetworkFee
}

// DEXFee is the swap fee for a trade. Zero when there is no trade or a venue is missing.
// Uniswap on either leg uses the higher rate.
func DEXFee(tradeAmount decimal.Decimal, dexFrom, dexTo string) decimal.Decimal {
	if !tradeAmount.IsPositive() || dexFrom == "" || dexTo == "" {
		return decimal.Zero
	}
	if dexFrom == catalog.DEXUniswap || dexTo == catalog.DEXUniswap {
		return tradeAmount.Mul(uniswapFeeRate)
	}
	return tradeAmount.Mul(defaultFeeRate)
}

// PriceDiff is the assumed relative spread captured by the trade.
func PriceDiff(coinFrom, coinTo, dexFrom, dexTo string) decimal.Decimal {
	if coinFrom == "" || coinTo == "" || coinFrom == coinTo {
		return decimal.Zero
	}
	if dexFrom == catalog.DEXUniswap && dexTo == catalog.DEXSushiswap {
		return uniswapSushiSpread
	}
	return defaultSpread
}

// GasFee is the estimated cost of the trade: network fee plus swap fee.
func GasFee(network string, tradeAmount decimal.Decimal, dexFrom, dexTo string) decimal.Decimal {
	return NetworkFee(network).Add(DEXFee(tradeAmount, dexFrom, dexTo))
}

// Budget tiers for suggesting an amount from a gas budget, in ascending order.
var budgetTiers = []struct {
	upTo   decimal.Decimal
	amount decimal.Decimal
}{
	{decimal.NewFromInt(10), decimal.NewFromInt(500)},
	{decimal.NewFromInt(50), decimal.NewFromInt(2000)},
}

var topTierAmount = decimal.NewFromInt(5000)

// SuggestAmountForBudget maps a gas budget to a trade amount.
// Returns false when the budget is not positive.
func SuggestAmountForBudget(budget decimal.Decimal) (decimal.Decimal, bool) {
	if !budget.IsPositive() {
		return decimal.Zero, false
	}
	for _, tier := range budgetTiers {
		if budget.LessThanOrEqual(tier.upTo) {
			return tier.amount, true
		}
	}
	return topTierAmount, true
}
