package cmd

import (
	"fmt"
	"strconv"

	"github.com/18981850753/shopList-App/internal/ledger"
	"github.com/18981850753/shopList-App/internal/models"

	"github.com/spf13/cobra"
)

var (
	editInput  ledger.Input
	skipDelete bool
)

var editCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Edit one record",
	Long: `Edit the record at the given index (the # column of 'shoplist show').
Only the flags you pass change; an empty --weight is stored as 1.0kg. The
creation time is kept and the update time set to now.`,
	Example: `  shoplist edit 3 --price 12 --remark discounted`,
	Args:    cobra.ExactArgs(1),
	RunE:    runEdit,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <index>",
	Aliases: []string{"rm"},
	Short:   "Delete one record",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	editCmd.Flags().StringVarP(&editInput.Name, "name", "n", "", "Product name")
	editCmd.Flags().StringVarP(&editInput.Price, "price", "p", "", "Price")
	editCmd.Flags().StringVarP(&editInput.Weight, "weight", "w", "", "Weight in kg")
	editCmd.Flags().StringVarP(&editInput.Brand, "brand", "b", "", "Brand")
	editCmd.Flags().StringVarP(&editInput.Remark, "remark", "r", "", "Remark")

	deleteCmd.Flags().BoolVar(&skipDelete, "yes", false, "Skip confirmation prompt")
}

// lookupRecord reads the store and returns the record at the index given
// on the command line.
func lookupRecord(svc *ledger.Service, arg string) (models.Record, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return models.Record{}, fmt.Errorf("invalid index %q: %w", arg, err)
	}
	catalog, err := svc.Catalog()
	if err != nil {
		return models.Record{}, err
	}
	record, ok := catalog.Record(index)
	if !ok {
		return models.Record{}, fmt.Errorf("no record at index %d", index)
	}
	return record, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	svc, err := openLedger()
	if err != nil {
		return err
	}
	original, err := lookupRecord(svc, args[0])
	if err != nil {
		return err
	}

	in := ledger.InputFrom(original)
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = editInput.Name
	}
	if flags.Changed("price") {
		in.Price = editInput.Price
	}
	if flags.Changed("weight") {
		in.Weight = editInput.Weight
	}
	if flags.Changed("brand") {
		in.Brand = editInput.Brand
	}
	if flags.Changed("remark") {
		in.Remark = editInput.Remark
	}

	updated, err := svc.Update(original, in)
	if err != nil {
		return explain(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Updated record %d", updated.Index)))
	renderRecords(out, updated.Name, []models.Record{updated})
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	svc, err := openLedger()
	if err != nil {
		return err
	}
	record, err := lookupRecord(svc, args[0])
	if err != nil {
		return err
	}

	if !skipDelete {
		renderRecords(cmd.OutOrStdout(), record.Name, []models.Record{record})
		if !confirmAction(cmd, "Delete this record?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled")
			return nil
		}
	}

	if err := svc.Delete(record); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Deleted record %d (%s)", record.Index, record.Name)))
	return nil
}
