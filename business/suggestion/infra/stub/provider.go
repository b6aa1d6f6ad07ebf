// Package stub provides a deterministic suggestion provider for offline use and tests.
package stub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	planner "github.com/fd1az/dox-arbitrage/business/planner/domain"
	"github.com/fd1az/dox-arbitrage/business/suggestion/domain"
)

// liquidityShare caps the suggested amount at a tenth of the available liquidity.
var liquidityShare = decimal.RequireFromString("0.1")

// Provider answers from the same fee model the form uses.
type Provider struct {
	delay time.Duration
}

// New creates a stub provider that answers after delay.
func New(delay time.Duration) *Provider {
	return &Provider{delay: delay}
}

func (p *Provider) Name() string {
	return "stub"
}

// Suggest picks the budget tier amount, capped by liquidity, and prices it with the form's spread model.
func (p *Provider) Suggest(ctx context.Context, req domain.Request) (*domain.Suggestion, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	amount, ok := planner.SuggestAmountForBudget(req.GasBudget)
	if !ok {
		return nil, domain.ErrNoGasBudget
	}

	capped := false
	if limit := req.AvailableLiquidity.Mul(liquidityShare); amount.GreaterThan(limit) {
		amount = limit.Truncate(2)
		capped = true
	}

	coinFrom, coinTo, _ := strings.Cut(req.TokenPair, "/")
	var dexFrom, dexTo string
	if len(req.DEXs) > 0 {
		dexFrom = req.DEXs[0]
	}
	if len(req.DEXs) > 1 {
		dexTo = req.DEXs[1]
	}

	spread := planner.PriceDiff(coinFrom, coinTo, dexFrom, dexTo)
	profit := amount.Mul(spread).Sub(req.GasBudget)

	return &domain.Suggestion{
		SuggestedAmount:     amount,
		EstimatedProfit:     profit,
		StrategyExplanation: explain(req, amount, spread, capped),
	}, nil
}

func explain(req domain.Request, amount, spread decimal.Decimal, capped bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Borrow %s %s through %s on %s and route it %s. ",
		amount.String(), firstCoin(req.TokenPair), req.BorrowingProtocol, req.Network, strings.Join(req.DEXs, " -> "))
	fmt.Fprintf(&b, "A %s%% spread on this size covers the $%s gas budget.",
		spread.Shift(2).StringFixed(1), req.GasBudget.StringFixed(2))
	if capped {
		b.WriteString(" The size is limited to 10% of available liquidity to keep slippage low.")
	}
	return b.String()
}

func firstCoin(pair string) string {
	coin, _, _ := strings.Cut(pair, "/")
	return coin
}
