package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Search engine tuning.
	SearchCacheTTLSeconds int `mapstructure:"SEARCH_CACHE_TTL_SECONDS"`
	SearchTimeoutMS       int `mapstructure:"SEARCH_TIMEOUT_MS"`
	FuzzyMaxDistancePct   int `mapstructure:"FUZZY_MAX_DISTANCE_PCT"`
	AutocompleteLimit     int `mapstructure:"AUTOCOMPLETE_LIMIT"`
	SuggestionLimit       int `mapstructure:"SUGGESTION_LIMIT"`
	WorkerPoolSize        int `mapstructure:"WORKER_POOL_SIZE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SEARCH_CACHE_TTL_SECONDS", 120)
	viper.SetDefault("SEARCH_TIMEOUT_MS", 5000)
	viper.SetDefault("FUZZY_MAX_DISTANCE_PCT", 30)
	viper.SetDefault("AUTOCOMPLETE_LIMIT", 10)
	viper.SetDefault("SUGGESTION_LIMIT", 5)
	viper.SetDefault("WORKER_POOL_SIZE", 32)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// ExtraCategorySynonyms returns admin-configured synonym additions, keyed by
// category id. Empty when not configured.
func ExtraCategorySynonyms() map[string][]string {
	return viper.GetStringMapStringSlice("CATEGORY_SYNONYMS")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
