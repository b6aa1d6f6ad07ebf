package infra

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
)

const rule = "================================================================================"

// ConsoleReporter prints an estimate breakdown for the CLI.
type ConsoleReporter struct {
	out  io.Writer
	reg  *catalog.Registry
	json bool
}

// NewConsoleReporter creates a reporter writing to stdout.
func NewConsoleReporter(reg *catalog.Registry) *ConsoleReporter {
	return &ConsoleReporter{
		out: os.Stdout,
		reg: reg,
	}
}

// WithWriter redirects output.
func (r *ConsoleReporter) WithWriter(w io.Writer) *ConsoleReporter {
	r.out = w
	return r
}

// WithJSON switches to machine-readable output.
func (r *ConsoleReporter) WithJSON(enabled bool) *ConsoleReporter {
	r.json = enabled
	return r
}

type jsonReport struct {
	Form    domain.FormState      `json:"form"`
	Display domain.DerivedDisplay `json:"display"`
}

// Report writes the breakdown of display for form.
func (r *ConsoleReporter) Report(form domain.FormState, display domain.DerivedDisplay) error {
	if r.json {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonReport{Form: form, Display: display})
	}

	label := func(kind catalog.Kind, v string) string {
		return r.reg.Label(kind, v)
	}

	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, color.GreenString("ARBITRAGE ESTIMATE"))
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Network:        %s\n", label(catalog.KindNetwork, form.Network))
	if id, ok := r.reg.ChainID(form.Network); ok {
		fmt.Fprintf(r.out, "Chain ID:       %d\n", id)
	}
	fmt.Fprintf(r.out, "Borrowing:      %s\n", label(catalog.KindProtocol, form.BorrowingProtocol))
	fmt.Fprintf(r.out, "Route:          %s -> %s\n",
		label(catalog.KindDEXFrom, form.DEXFrom), label(catalog.KindDEXTo, form.DEXTo))
	fmt.Fprintf(r.out, "Pair:           %s\n", color.CyanString(form.TokenPair()))
	fmt.Fprintln(r.out, strings.Repeat("-", len(rule)))
	fmt.Fprintln(r.out, "TRADE")
	fmt.Fprintf(r.out, "  Amount:         %s\n", display.TradeAmount.String())
	if display.ShowGasInput {
		budget := "not set"
		if form.GasBudget.Valid {
			budget = domain.FormatUSD(form.GasBudget.Decimal)
		}
		fmt.Fprintf(r.out, "  Gas Budget:     %s\n", budget)
	} else {
		fmt.Fprintf(r.out, "  Gas Fee:        %s\n", domain.FormatUSD(display.GasFeeEstimate))
	}
	fmt.Fprintf(r.out, "  Price Diff:     %s%%\n", display.PriceDiff.Shift(2).StringFixed(2))
	fmt.Fprintln(r.out, strings.Repeat("-", len(rule)))
	fmt.Fprintln(r.out, "PROFIT")
	fmt.Fprintf(r.out, "  Gross:          %s\n", domain.FormatUSD(display.GrossProfit))
	fmt.Fprintf(r.out, "  Fees:           %s\n", domain.FormatUSD(display.FeeForProfit))

	profit := domain.FormatUSD(display.ProfitEstimate)
	if display.Profitable() {
		profit = color.GreenString(profit)
	} else {
		profit = color.RedString(profit)
	}
	fmt.Fprintf(r.out, "  Estimated:      %s\n", profit)
	fmt.Fprintln(r.out, rule)

	if errs := form.Validate(r.reg); len(errs) > 0 {
		fmt.Fprintln(r.out, color.YellowString("This form could not be submitted:"))
		for _, fe := range errs {
			fmt.Fprintf(r.out, "  %s: %s\n", fe.Field.Label(), fe.Message)
		}
	}
	return nil
}
