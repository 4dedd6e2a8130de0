package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultFile       = "shop.txt"
	DefaultDBURI      = "mongodb://localhost:27017"
	DefaultDBName     = "shoplist"
	DefaultCollection = "records"
	DefaultBackupDir  = "./backups"
)

var envReplacer = strings.NewReplacer(".", "_")

type Config struct {
	File      string      `mapstructure:"file"`
	BackupDir string      `mapstructure:"backup_dir"`
	Mongo     MongoConfig `mapstructure:"mongo"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// Setup registers defaults and environment lookup on v. Values come from,
// lowest first: defaults, shoplist.yaml, .env / SHOP_* environment, flags
// bound by the caller.
func Setup(v *viper.Viper) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	v.SetDefault("file", DefaultFile)
	v.SetDefault("backup_dir", DefaultBackupDir)
	v.SetDefault("mongo.uri", DefaultDBURI)
	v.SetDefault("mongo.database", DefaultDBName)
	v.SetDefault("mongo.collection", DefaultCollection)

	v.SetConfigName("shoplist")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// SHOP_FILE, SHOP_MONGO_URI, ...
	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	for key, legacy := range map[string]string{
		"mongo.uri":        "DB_URI",
		"mongo.database":   "DB_NAME",
		"mongo.collection": "DB_COLLECTION",
	} {
		if err := v.BindEnv(key, "SHOP_"+strings.ToUpper(envReplacer.Replace(key)), legacy); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// Load decodes the current values of v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.File == "" {
		return nil, errors.New("store file path is empty")
	}
	return &cfg, nil
}
