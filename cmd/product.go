package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var skipRemove bool

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a product in every record",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

var removeProductCmd = &cobra.Command{
	Use:   "remove-product <name>",
	Short: "Delete a product and all of its records",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoveProduct,
}

func init() {
	removeProductCmd.Flags().BoolVar(&skipRemove, "yes", false, "Skip confirmation prompt")
}

func runRename(cmd *cobra.Command, args []string) error {
	svc, err := openLedger()
	if err != nil {
		return err
	}
	changed, err := svc.RenameProduct(args[0], args[1])
	if err != nil {
		return err
	}
	if changed == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nothing to rename"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(
		fmt.Sprintf("Renamed %s to %s in %d records", args[0], strings.TrimSpace(args[1]), changed)))
	return nil
}

func runRemoveProduct(cmd *cobra.Command, args []string) error {
	svc, err := openLedger()
	if err != nil {
		return err
	}
	name := args[0]

	if !skipRemove {
		prompt := fmt.Sprintf("Delete product %q and all of its records?", name)
		if !confirmAction(cmd, prompt) {
			fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled")
			return nil
		}
	}

	removed, err := svc.RemoveProduct(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Deleted %s (%d records)", name, removed)))
	return nil
}

func confirmAction(cmd *cobra.Command, message string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", message)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
