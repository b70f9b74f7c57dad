package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"procurement/internal/kpi"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	Port                 string
	LogLevel             string
	Environment          string
	CORSOrigins          []string
	AttentionHorizonDays int
}

// Load reads configs/.env when present, then the process environment.
// The boolean reports whether the .env file was found.
func Load() (*Config, bool) {
	found := godotenv.Load("configs/.env") == nil

	return &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Environment: getEnvOrDefault("APP_ENV", "development"),
		CORSOrigins: splitList(getEnvOrDefault("CORS_ORIGINS",
			"http://localhost:5173,http://127.0.0.1:5173,http://localhost:5174")),
		AttentionHorizonDays: getIntOrDefault("ATTENTION_HORIZON_DAYS", kpi.DefaultAttentionHorizonDays),
	}, found
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
