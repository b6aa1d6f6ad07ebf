package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	plannerDI "github.com/fd1az/dox-arbitrage/business/planner/di"
	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	suggestionDI "github.com/fd1az/dox-arbitrage/business/suggestion/di"
)

var applySuggestion bool

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the smart suggestion service for a trade size",
	Long: `Send the trade form to the configured suggestion provider and print the
suggested amount, estimated profit and strategy.

The gas budget sent is --gas-budget when positive, otherwise the form's gas fee estimate.

Examples:
  dox suggest --gas-budget 40
  dox suggest --network polygon --coin-from matic --coin-to usdc
  dox suggest --gas-budget 40 --apply`,
	RunE: runSuggest,
}

func init() {
	addFormFlags(suggestCmd)
	suggestCmd.Flags().BoolVar(&applySuggestion, "apply", false, "Apply the suggestion to the form and print the new estimate")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := bootstrap(ctx, configPath, false)
	if err != nil {
		return err
	}
	defer app.Close()

	sr := app.mono.Services()
	session := plannerDI.GetSession(sr)
	requester := suggestionDI.GetRequester(sr)

	if err := applyFormFlags(cmd, session); err != nil {
		return err
	}

	snap := session.Snapshot()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Generating Smart Suggestion..."
	if !jsonOutput {
		s.Start()
	}
	sg, err := requester.RequestFor(ctx, snap.Form, snap.Display)
	s.Stop()

	if err != nil {
		fmt.Println(color.RedString("Smart Suggestion Failed"))
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sg)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println(color.GreenString("SMART ARBITRAGE SUGGESTION"))
	fmt.Printf("Provider: %s\n", requester.ProviderName())
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Suggested Amount:  %s %s\n", sg.SuggestedAmount.StringFixed(2), strings.ToUpper(snap.Form.CoinFrom))

	profit := domain.FormatUSD(sg.EstimatedProfit)
	if sg.EstimatedProfit.IsPositive() {
		profit = color.GreenString(profit)
	} else {
		profit = color.RedString(profit)
	}
	fmt.Printf("Estimated Profit:  %s\n", profit)
	fmt.Println(strings.Repeat("-", 70))
	fmt.Println("Strategy Explanation")
	fmt.Println(sg.StrategyExplanation)
	fmt.Println(strings.Repeat("=", 70))

	if !applySuggestion {
		return nil
	}

	if err := session.ApplySuggestion(sg.Applied()); err != nil {
		return err
	}
	snap = session.Snapshot()
	return plannerDI.GetReporter(sr).Report(snap.Form, snap.Display)
}
