package cmd

import (
	"fmt"

	"github.com/18981850753/shopList-App/internal/backup"
	"github.com/18981850753/shopList-App/internal/ledger"
	"github.com/18981850753/shopList-App/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var logFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive TUI (same as default)",
	Long: `Start the Terminal User Interface. Browse products with their unit price
statistics, open a product to sort its records, and add, edit or delete
records.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "shoplist.log", "Log file used while the TUI is running")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}

	f, err := tea.LogToFile(logFile, "shoplist")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	model := tui.NewModel(ledger.NewService(st), backup.NewService(st), cfg.BackupDir)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
