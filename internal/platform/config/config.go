package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// LargeAmountThreshold is the validation warning limit for transaction
	// totals. Exceeding it never blocks a transaction.
	LargeAmountThreshold decimal.Decimal

	// BatchWorkers bounds concurrent item processing per batch.
	BatchWorkers int

	// RateLimit is the ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("LARGE_AMOUNT_THRESHOLD", "10000")
	viper.SetDefault("BATCH_WORKERS", 4)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	thresholdStr := viper.GetString("LARGE_AMOUNT_THRESHOLD")
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil {
		threshold = decimal.NewFromInt(10000)
		log.Printf("Warning: Invalid value for LARGE_AMOUNT_THRESHOLD ('%s'). Defaulting to %s.\n", thresholdStr, threshold.String())
	}
	cfg.LargeAmountThreshold = threshold

	cfg.BatchWorkers = viper.GetInt("BATCH_WORKERS")
	if cfg.BatchWorkers < 1 {
		cfg.BatchWorkers = 4
		log.Printf("Warning: Invalid value for BATCH_WORKERS. Defaulting to %d.\n", cfg.BatchWorkers)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
