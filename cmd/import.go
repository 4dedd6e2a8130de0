package cmd

import (
	"fmt"

	"github.com/18981850753/shopList-App/internal/backup"

	"github.com/spf13/cobra"
)

var csvFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import records from a CSV file",
	Long: `Append records from a CSV file with a header row. Recognised columns:
name, price, weight, brand, remark, create_time, update_time. Rows without a
name, price or weight are skipped.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&csvFile, "csv", "c", "", "CSV file to import (required)")

	importCmd.MarkFlagRequired("csv")
}

func runImport(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}

	result, err := backup.NewService(st).ImportCSV(csvFile)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf(
		"Imported %d/%d records (%d skipped) into %s",
		result.ImportedRecords, result.TotalRecords, result.SkippedRecords, st.Path())))
	return nil
}
