package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HTTPPort       string
	CheckInterval  time.Duration
	MaxConcurrency int
	HTTPTimeout    time.Duration
	RequestRate    float64 // outbound requests per second across all workers
	ShutdownGrace  time.Duration

	// WoltLat/WoltLon resolve region-specific hours on the Wolt venue API.
	WoltLat float64
	WoltLon float64

	// AssumeClosedBolt forces a Closed verdict when a Bolt page yields no
	// signal at all. Off by default: uncertain stays uncertain.
	AssumeClosedBolt bool

	// DatabaseDriver selects the snapshot store: sqlite, postgres, or none.
	DatabaseDriver string
	DatabaseURL    string
}

// Load loads configuration from the environment with sane defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8000"),
		CheckInterval:    getEnvDuration("CHECK_INTERVAL", 60*time.Second),
		MaxConcurrency:   getEnvInt("MAX_CONCURRENCY", 12),
		HTTPTimeout:      getEnvDuration("HTTP_TIMEOUT", 12*time.Second),
		RequestRate:      getEnvFloat("REQUEST_RATE", 8),
		ShutdownGrace:    getEnvDuration("SHUTDOWN_GRACE", 10*time.Second),
		WoltLat:          getEnvFloat("WOLT_LAT", 44.4268),
		WoltLon:          getEnvFloat("WOLT_LON", 26.1025),
		AssumeClosedBolt: getEnvBool("ASSUME_CLOSED_WHEN_UNCERTAIN_BOLT", false),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:      getEnv("DATABASE_URL", "monitor.db"),
	}
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer.
func getEnvInt(key string, fallback int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return fallback
}

// Helper function to get an environment variable as a float.
func getEnvFloat(key string, fallback float64) float64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
			return value
		}
	}
	return fallback
}

// Helper function to get an environment variable as a time.Duration.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return fallback
}

// Helper function to get an environment variable as a boolean.
// Accepts 1/true/yes in any case, matching the original deployment's envs.
func getEnvBool(key string, fallback bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch valueStr {
		case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
			return true
		case "0", "false", "FALSE", "False", "no", "NO", "No":
			return false
		}
	}
	return fallback
}
