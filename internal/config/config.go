package config

import (
	"os"
)

// Config holds the environment-backed service configuration
type Config struct {
	Port        string
	Environment string

	// DatabaseURL takes precedence; the DB_* components are the fallback
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables with defaults.
// Call godotenv.Load() first if a .env file should be honored.
func Load() *Config {
	return &Config{
		Port:        getEnvOrDefault("PORT", "8000"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:      getEnvOrDefault("DB_PORT", "5432"),
		DBUser:      getEnvOrDefault("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnvOrDefault("DB_NAME", "b2better"),
		DBSSLMode:   getEnvOrDefault("DB_SSLMODE", "disable"),

		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:  getEnvOrDefault("LOG_FILE", "server.log"),
	}
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
