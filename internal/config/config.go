package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Remote scheduling service
	SchedulerURL   string
	SchedulerToken string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Review sessions
	ItemTimerSeconds int
	ReviewBatchSize  int

	// Chapter catalog
	CatalogURL         string
	CatalogFallbackURL string
	CatalogCacheTTLHours int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		Env:            getEnvOrDefault("ENV", "development"),
		SchedulerURL:   mustGetEnv("SCHEDULER_URL"),
		SchedulerToken: getEnvOrDefault("SCHEDULER_TOKEN", ""),
		RedisURL:       mustGetEnv("REDIS_URL"),
		JWTSecret:      mustGetEnv("JWT_SECRET"),
		ItemTimerSeconds: getEnvAsIntOrDefault("ITEM_TIMER_SECONDS", 30),
		ReviewBatchSize:  getEnvAsIntOrDefault("REVIEW_BATCH_SIZE", 50),
		CatalogURL:         getEnvOrDefault("CATALOG_URL", "https://api.alquran.cloud/v1/surah"),
		CatalogFallbackURL: getEnvOrDefault("CATALOG_FALLBACK_URL", ""),
		CatalogCacheTTLHours: getEnvAsIntOrDefault("CATALOG_CACHE_TTL_HOURS", 24),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
