package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/18981850753/shopList-App/internal/backup"
	"github.com/18981850753/shopList-App/internal/database"

	"github.com/spf13/cobra"
)

var (
	outputDir    string
	backupFormat string
	backupMongo  bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the store",
	Long: `Write a timestamped snapshot of the store as CSV or JSON lines. With
--mongo the snapshot is also mirrored to the configured MongoDB collection.`,
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for backup files (default from config, ./backups)")
	backupCmd.Flags().StringVarP(&backupFormat, "format", "f", backup.FormatCSV, "Backup format: csv or json")
	backupCmd.Flags().BoolVar(&backupMongo, "mongo", false, "Also mirror the store to MongoDB")
}

func runBackup(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	backupService := backup.NewService(st)

	dir := outputDir
	if dir == "" {
		dir = cfg.BackupDir
	}

	log.Printf("Starting backup of %s to %s format...", st.Path(), backupFormat)
	backupFile, count, err := backupService.BackupStore(dir, backupFormat)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Backed up %d records to %s", count, backupFile)))

	if !backupMongo {
		return nil
	}

	db, err := database.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	mirrored, err := backupService.PushMirror(ctx, db, cfg.Mongo.Collection)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf(
		"Mirrored %d records to %s.%s", mirrored, cfg.Mongo.Database, cfg.Mongo.Collection)))
	return nil
}
