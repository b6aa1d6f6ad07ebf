// Package main is the entry point for the D-0-X arbitrage planner.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fd1az/dox-arbitrage/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "dox",
	Short: "Plan flash-loan arbitrage trades across DEXs",
	Long: `dox is a terminal planner for flash-loan arbitrage. Pick a network, a borrowing
protocol, two DEXs and a token pair, and it estimates gas, fees and profit as you type.
Trades are simulated; no transaction is ever signed.

Run without a subcommand to open the interactive form.

Examples:
  dox
  dox estimate --amount-from 1000 --coin-from eth --coin-to usdc
  dox estimate --gas-budget 25 --json
  dox suggest --gas-budget 40
  dox catalog`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := bootstrap(ctx, configPath, true)
	if err != nil {
		return err
	}
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)
	app.serve(gctx, g)

	g.Go(func() error {
		// Quitting the form stops the side servers.
		defer cancel()
		if err := ui.Run(gctx, app.uiServices()); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
