package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/18981850753/shopList-App/internal/backup"
	"github.com/18981850753/shopList-App/internal/database"

	"github.com/spf13/cobra"
)

var (
	inputFile        string
	restoreFormat    string
	replaceExisting  bool
	fromMongo        bool
	skipConfirmation bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the store from a backup",
	Long: `Load records from a CSV/JSON backup file, or from the MongoDB mirror with
--from-mongo. Records are appended unless --replace is given.`,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Backup file to restore")
	restoreCmd.Flags().StringVarP(&restoreFormat, "format", "f", "", "Backup format: csv or json (auto-detected if not specified)")
	restoreCmd.Flags().BoolVar(&replaceExisting, "replace", false, "Replace the store instead of appending")
	restoreCmd.Flags().BoolVar(&fromMongo, "from-mongo", false, "Restore from the MongoDB mirror")
	restoreCmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompts")

	restoreCmd.MarkFlagsMutuallyExclusive("input", "from-mongo")
	restoreCmd.MarkFlagsOneRequired("input", "from-mongo")
}

func runRestore(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	backupService := backup.NewService(st)

	format := restoreFormat
	if !fromMongo {
		if _, err := os.Stat(inputFile); os.IsNotExist(err) {
			return fmt.Errorf("backup file does not exist: %s", inputFile)
		}
		if format == "" {
			if format, err = backup.DetectFormat(inputFile); err != nil {
				return err
			}
		}
		if err := backupService.ValidateBackupFile(inputFile, format); err != nil {
			return fmt.Errorf("backup file validation failed: %w", err)
		}
	}

	if !skipConfirmation {
		log.Printf("About to restore:")
		if fromMongo {
			log.Printf("  Source: %s.%s", cfg.Mongo.Database, cfg.Mongo.Collection)
		} else {
			log.Printf("  Source file: %s (%s)", inputFile, format)
		}
		log.Printf("  Target store: %s", st.Path())
		if replaceExisting {
			log.Printf("  WARNING: Existing records will be REPLACED!")
		}

		if !confirmAction(cmd, "Do you want to continue?") {
			log.Println("Restore cancelled")
			return nil
		}
	}

	var count int
	if fromMongo {
		db, err := database.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()
		count, err = backupService.PullMirror(ctx, db, cfg.Mongo.Collection, replaceExisting)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
	} else {
		count, err = backupService.RestoreStore(inputFile, format, replaceExisting)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Restored %d records into %s", count, st.Path())))
	return nil
}
