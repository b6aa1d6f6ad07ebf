package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	plannerApp "github.com/fd1az/dox-arbitrage/business/planner/app"
	plannerDI "github.com/fd1az/dox-arbitrage/business/planner/di"
	"github.com/fd1az/dox-arbitrage/business/planner/domain"
)

// formFlags maps each form field to its flag. Selections come first so that a
// gas budget is applied after the amounts it may fill in.
var formFlags = []struct {
	field domain.Field
	name  string
	usage string
}{
	{domain.FieldNetwork, "network", "Network id or label"},
	{domain.FieldBorrowingProtocol, "protocol", "Borrowing protocol id or label"},
	{domain.FieldDEXFrom, "dex-from", "DEX to buy on"},
	{domain.FieldDEXTo, "dex-to", "DEX to sell on"},
	{domain.FieldCoinFrom, "coin-from", "Coin to borrow"},
	{domain.FieldCoinTo, "coin-to", "Coin to trade into"},
	{domain.FieldAmountFrom, "amount-from", "Amount of the borrowed coin"},
	{domain.FieldAmountTo, "amount-to", "Amount of the target coin"},
	{domain.FieldGasBudget, "gas-budget", "Gas budget in USD; fills both amounts when they are empty"},
}

var executeTrade bool

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate gas, fees and profit for a trade",
	Long: `Fill the trade form from flags and print the fee and profit breakdown.
Unset flags keep the form defaults.

Examples:
  # Borrow 1000 ETH on Aave and route Uniswap -> Sushiswap
  dox estimate --network ethereum --protocol aave-v3 --amount-from 1000

  # Let a $25 gas budget pick the trade size
  dox estimate --gas-budget 25

  # Submit the form to the simulated executor
  dox estimate --amount-from 500 --execute`,
	RunE: runEstimate,
}

func init() {
	addFormFlags(estimateCmd)
	estimateCmd.Flags().BoolVar(&executeTrade, "execute", false, "Submit the trade to the simulated executor")

	rootCmd.AddCommand(estimateCmd)
}

func addFormFlags(cmd *cobra.Command) {
	for _, f := range formFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
}

// applyFormFlags copies every flag the user set into the session, in form order.
func applyFormFlags(cmd *cobra.Command, session *plannerApp.Session) error {
	for _, f := range formFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		raw, _ := cmd.Flags().GetString(f.name)
		if err := session.Set(f.field, raw); err != nil {
			return fmt.Errorf("--%s: %w", f.name, err)
		}
	}
	return nil
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := bootstrap(ctx, configPath, false)
	if err != nil {
		return err
	}
	defer app.Close()

	session := plannerDI.GetSession(app.mono.Services())
	if err := applyFormFlags(cmd, session); err != nil {
		return err
	}

	snap := session.Snapshot()
	reporter := plannerDI.GetReporter(app.mono.Services()).WithJSON(jsonOutput)
	if err := reporter.Report(snap.Form, snap.Display); err != nil {
		return err
	}

	if !executeTrade {
		return nil
	}

	exec, err := session.Submit(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(exec)
	}

	fmt.Println(color.GreenString("Arbitrage Executed! (Simulated)"))
	fmt.Println(exec.Message())
	fmt.Printf("Execution ID: %s\n\n", exec.ID)
	return nil
}
