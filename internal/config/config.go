// Package config provides configuration management for the application
package config

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// RedisConfig holds Redis/Valkey configuration for the booking store
type RedisConfig struct {
	Enabled bool
	// URI is prioritized if provided, otherwise individual connection parameters are used
	URI       string
	Host      string
	Port      string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
	// TTL for bookings (0 means no expiration)
	BookingTTL time.Duration
}

// GetServerConfig loads HTTP server configuration from environment variables
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		ReadTimeout:     15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// GetRedisConfig loads Redis/Valkey configuration from environment variables.
// Redis is optional: when disabled the application runs on the in-memory
// booking store.
func GetRedisConfig() RedisConfig {
	// Parse TTL from environment variable (in hours)
	ttlHours, _ := strconv.Atoi(getEnv("REDIS_BOOKING_TTL_HOURS", "720")) // Default 30 days
	ttl := time.Duration(ttlHours) * time.Hour

	// Parse DB index
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:    getEnvBool("REDIS_ENABLED", false),
		URI:        getEnv("REDIS_URI_CROOMS", ""),
		Host:       getEnv("REDIS_HOST_CROOMS", getEnv("REDIS_ADDRESS", "localhost")),
		Port:       getEnv("REDIS_PORT_CROOMS", "6379"),
		Username:   getEnv("REDIS_USERNAME_CROOMS", ""),
		Password:   getEnv("REDIS_PASSWORD_CROOMS", getEnv("REDIS_PASSWORD", "")),
		DB:         db,
		KeyPrefix:  getEnv("REDIS_KEY_PREFIX", "crooms:"),
		BookingTTL: ttl,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
