// internal/config/config.go
// Configuration management using environment variables and optional config files

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Competition CompetitionConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	Features    FeatureFlags
}

// CompetitionConfig points at the on-disk compstate directory this instance
// serves, and the admin-visible identity of the event it belongs to.
type CompetitionConfig struct {
	Root string
	Name string
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contains all database connection settings
type DatabaseConfig struct {
	MySQL   MySQLConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
}

// MySQLConfig contains MySQL-specific settings. MySQL backs the durable
// history store of every built competition snapshot.
type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// MongoDBConfig contains MongoDB-specific settings. MongoDB backs the
// append-only audit log of raw submitted result sheets.
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig contains Redis-specific settings. Redis backs the cached
// serialized Competition snapshot, keyed by state commit.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig contains authentication and authorization settings for the
// single bootstrap admin account.
type AuthConfig struct {
	JWTSecret     string
	JWTExpiration time.Duration
	BCryptCost    int
	AdminUsername string
	AdminPasswordHash string
}

// RateLimitConfig bounds the rate of admin mutation requests (delays,
// reloads, award overrides).
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// FeatureFlags allows toggling features without code changes
type FeatureFlags struct {
	EnableWebSocket bool
	MaintenanceMode bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist in production
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		Competition: CompetitionConfig{
			Root: getEnvOrDefault("COMPETITION_ROOT", "./compstate"),
			Name: getEnvOrDefault("COMPETITION_NAME", "competition"),
		},
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8080"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			MySQL: MySQLConfig{
				DSN:             getEnvOrDefault("MYSQL_DSN", ""),
				MaxOpenConns:    getIntOrDefault("MYSQL_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getIntOrDefault("MYSQL_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: getDurationOrDefault("MYSQL_CONN_MAX_LIFETIME", 5*time.Minute),
			},
			MongoDB: MongoDBConfig{
				URI:      getEnvOrDefault("MONGO_URI", ""),
				Database: getEnvOrDefault("MONGO_DATABASE", "srcomp_audit"),
			},
			Redis: RedisConfig{
				Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getIntOrDefault("REDIS_DB", 0),
			},
		},
		Auth: AuthConfig{
			JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
			JWTExpiration:     getDurationOrDefault("JWT_EXPIRATION", 8*time.Hour),
			BCryptCost:        getIntOrDefault("BCRYPT_COST", 12),
			AdminUsername:     getEnvOrDefault("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: getEnvOrDefault("ADMIN_PASSWORD_HASH", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatOrDefault("ADMIN_RATE_LIMIT_RPS", 5),
			Burst:             getIntOrDefault("ADMIN_RATE_LIMIT_BURST", 10),
		},
		Features: FeatureFlags{
			EnableWebSocket: getBoolOrDefault("ENABLE_WEBSOCKET", true),
			MaintenanceMode: getBoolOrDefault("MAINTENANCE_MODE", false),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.Competition.Root == "" {
		return fmt.Errorf("COMPETITION_ROOT is required")
	}
	if c.Database.MySQL.DSN == "" {
		return fmt.Errorf("MYSQL_DSN is required")
	}
	if c.Database.MongoDB.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required in production")
	}
	return nil
}

// Helper functions to read environment variables with defaults
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
