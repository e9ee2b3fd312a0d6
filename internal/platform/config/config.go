package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Tax defaults applied to entities without their own tax config.
	DefaultVATRate     float64
	DefaultCorpTaxRate float64

	// DepreciationExpenseCode is the chart code whose postings count as
	// depreciation in the tax report when an entity names no codes itself.
	DepreciationExpenseCode string

	// RateLimit uses the ulule/limiter format, e.g. "100-M" for 100 req/min.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("VAT_RATE_DEFAULT", 0.15)
	viper.SetDefault("CORP_TAX_RATE_DEFAULT", 0.27)
	viper.SetDefault("DEPRECIATION_EXPENSE_CODE", "6200")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.DefaultVATRate = viper.GetFloat64("VAT_RATE_DEFAULT")
	if cfg.DefaultVATRate < 0 || cfg.DefaultVATRate > 1 {
		log.Printf("Warning: VAT_RATE_DEFAULT %v out of range [0,1]. Defaulting to 0.15.\n", cfg.DefaultVATRate)
		cfg.DefaultVATRate = 0.15
	}

	cfg.DefaultCorpTaxRate = viper.GetFloat64("CORP_TAX_RATE_DEFAULT")
	if cfg.DefaultCorpTaxRate < 0 || cfg.DefaultCorpTaxRate > 1 {
		log.Printf("Warning: CORP_TAX_RATE_DEFAULT %v out of range [0,1]. Defaulting to 0.27.\n", cfg.DefaultCorpTaxRate)
		cfg.DefaultCorpTaxRate = 0.27
	}

	cfg.DepreciationExpenseCode = viper.GetString("DEPRECIATION_EXPENSE_CODE")
	if cfg.DepreciationExpenseCode == "" {
		cfg.DepreciationExpenseCode = "6200"
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
