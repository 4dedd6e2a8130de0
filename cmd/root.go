package cmd

import (
	"fmt"
	"log"

	"github.com/18981850753/shopList-App/internal/config"
	"github.com/18981850753/shopList-App/internal/ledger"
	"github.com/18981850753/shopList-App/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "shoplist",
	Short: "A small shop ledger for fruit prices",
	Long: `shoplist records fruit purchases (name, price, weight, brand, remark)
in a flat text file, lists products with their unit price statistics and
lets you sort, edit and delete individual records.

Run without a command to start the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("file", "F", config.DefaultFile, "Store file holding the records")
	flags.StringP("db-uri", "u", config.DefaultDBURI, "MongoDB connection URI")
	flags.StringP("database", "d", config.DefaultDBName, "MongoDB database name")
	flags.String("collection", config.DefaultCollection, "MongoDB collection for the mirror")

	for key, flag := range map[string]string{
		"file":             "file",
		"mongo.uri":        "db-uri",
		"mongo.database":   "database",
		"mongo.collection": "collection",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("failed to bind flag %s: %v", flag, err)
		}
	}

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(removeProductCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func initConfig() {
	if err := config.Setup(v); err != nil {
		log.Printf("Config error: %v", err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openStore makes sure the store file exists, as the app does on startup.
func openStore() (*store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st := store.New(cfg.File)
	if err := st.Init(); err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}

func openLedger() (*ledger.Service, error) {
	st, _, err := openStore()
	if err != nil {
		return nil, err
	}
	return ledger.NewService(st), nil
}
