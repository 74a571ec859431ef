package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	Environment string
	ServerPort  int
	LogLevel    string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// RedisURL enables the refresh-token denylist when set. Empty means
	// tokens stay irrevocable for their full lifetime.
	RedisURL string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("SERVER_PORT", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	accessTTLSeconds, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_SECONDS", "180"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL_SECONDS: %w", err)
	}

	refreshTTLHours, err := strconv.Atoi(getEnv("REFRESH_TOKEN_TTL_HOURS", "8760"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL_HOURS: %w", err)
	}

	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  port,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "tourvisit"),
		DBPassword: getEnv("DB_PASSWORD", "dev"),
		DBName:     getEnv("DB_NAME", "tourvisit"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenTTL:     time.Duration(accessTTLSeconds) * time.Second,
		RefreshTokenTTL:    time.Duration(refreshTTLHours) * time.Hour,

		CORSAllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
