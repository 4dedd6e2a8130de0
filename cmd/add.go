package cmd

import (
	"fmt"

	"github.com/18981850753/shopList-App/internal/ledger"

	"github.com/spf13/cobra"
)

var addInput ledger.Input

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a record",
	Long: `Add a purchase record. Price gets a ¥ prefix and weight a kg suffix when
they are missing; empty brand and remark are stored as 无.`,
	Example: `  shoplist add --name apple --price 10 --weight 2
  shoplist add -n 苹果 -p ¥12.5 -w 1.5kg -b 红富士 -r 新货`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addInput.Name, "name", "n", "", "Product name (required)")
	addCmd.Flags().StringVarP(&addInput.Price, "price", "p", "", "Price, e.g. 10 or ¥10 (required)")
	addCmd.Flags().StringVarP(&addInput.Weight, "weight", "w", "", "Weight in kg, e.g. 2 or 2kg (required)")
	addCmd.Flags().StringVarP(&addInput.Brand, "brand", "b", "", "Brand")
	addCmd.Flags().StringVarP(&addInput.Remark, "remark", "r", "", "Remark")
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, err := openLedger()
	if err != nil {
		return err
	}

	record, err := svc.Add(addInput)
	if err != nil {
		return explain(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(
		fmt.Sprintf("Added %s %s %s (%s)", record.Name, record.Price, record.Weight, record.CreateTime)))
	return nil
}
