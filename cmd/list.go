package cmd

import (
	"github.com/18981850753/shopList-App/internal/ledger"

	"github.com/spf13/cobra"
)

var (
	sortBy   string
	sortDesc bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List products with unit price statistics",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the records of one product",
	Long: `Show every record of a product (exact, case-sensitive name match).
Records can be sorted by price, unit price or creation time; unparseable
prices sort as 0 and unparseable times as 1970-01-01.`,
	Example: `  shoplist show apple --sort unit
  shoplist show apple --sort time --desc`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&sortBy, "sort", "s", "", "Sort by: price, unit or time")
	showCmd.Flags().BoolVar(&sortDesc, "desc", false, "Sort descending")
}

func runList(cmd *cobra.Command, args []string) error {
	svc, err := openLedger()
	if err != nil {
		return err
	}
	catalog, err := svc.Catalog()
	if err != nil {
		return err
	}
	renderProducts(cmd.OutOrStdout(), catalog.Products())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	svc, err := openLedger()
	if err != nil {
		return err
	}
	catalog, err := svc.Catalog()
	if err != nil {
		return err
	}

	table := catalog.Table(args[0])
	if sortBy != "" {
		key, err := ledger.ParseSortKey(sortBy)
		if err != nil {
			return err
		}
		order := ledger.Ascending
		if sortDesc {
			order = ledger.Descending
		}
		table.Sort(key, order)
	}

	renderRecords(cmd.OutOrStdout(), args[0], table.Records())
	return nil
}
