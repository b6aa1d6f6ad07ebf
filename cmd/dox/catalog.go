package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fd1az/dox-arbitrage/internal/catalog"
)

var catalogKind string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the supported networks, protocols, exchanges, coins and wallets",
	Long: `List every option the trade form accepts. Either the id or the label can be
passed to the estimate and suggest flags.

Examples:
  dox catalog
  dox catalog --kind network
  dox catalog --json`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogKind, "kind", "k", "", "Only list one kind (network, protocol, dexFrom, dexTo, coin, wallet)")
	rootCmd.AddCommand(catalogCmd)
}

type catalogEntry struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	ChainID uint64 `json:"chainId,omitempty"`
}

func runCatalog(_ *cobra.Command, _ []string) error {
	reg := catalog.DefaultRegistry()

	kinds := catalog.Kinds
	if catalogKind != "" {
		kinds = nil
		for _, k := range catalog.Kinds {
			if strings.EqualFold(string(k), catalogKind) {
				kinds = append(kinds, k)
			}
		}
		if len(kinds) == 0 {
			return catalog.ErrUnknownKind{Kind: catalog.Kind(catalogKind)}
		}
	}

	entries := make(map[catalog.Kind][]catalogEntry, len(kinds))
	for _, k := range kinds {
		for _, opt := range reg.Options(k) {
			e := catalogEntry{ID: opt.Value, Label: opt.Label}
			if k == catalog.KindNetwork {
				e.ChainID, _ = reg.ChainID(opt.Value)
			}
			entries[k] = append(entries[k], e)
		}
	}

	if jsonOutput {
		jsonData, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(jsonData))
		return nil
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        SUPPORTED OPTIONS")
	fmt.Println(strings.Repeat("=", 70))

	for _, k := range kinds {
		color.Cyan("\n%s", strings.ToUpper(k.Title()))
		fmt.Println(strings.Repeat("-", 70))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, e := range entries[k] {
			if e.ChainID != 0 {
				fmt.Fprintf(w, "  %s\t%s\tchain %d\n", e.ID, e.Label, e.ChainID)
				continue
			}
			fmt.Fprintf(w, "  %s\t%s\t\n", e.ID, e.Label)
		}
		w.Flush()
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
	return nil
}
