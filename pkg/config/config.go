package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Relational store
	DBDriver    string
	PostgresUrl string
	SQLitePath  string

	// Photo store. When MongoURI is empty photos live in the relational store.
	MongoURI      string
	MongoDatabase string

	JWTSecret               string
	TokenTTLHours           int
	FirebaseCredentialsPath string

	// Comma separated; empty allows any origin
	CORSOrigins string

	// Feed and notification page sizes
	DefaultFeedLimit int
	MaxPageLimit     int
}

// Load reads a .env file when present, then the process environment.
func Load() *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("APP_ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		DBDriver:                getEnv("DB_DRIVER", DriverPostgres),
		PostgresUrl:             getEnv("POSTGRES_CONN_STR", ""),
		SQLitePath:              getEnv("SQLITE_PATH", "plantly.db"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "plantly"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		TokenTTLHours:           getEnvInt("TOKEN_TTL_HOURS", 72),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		CORSOrigins:             getEnv("CORS_ORIGINS", ""),
		DefaultFeedLimit:        getEnvInt("DEFAULT_FEED_LIMIT", 9),
		MaxPageLimit:            getEnvInt("MAX_PAGE_LIMIT", 50),
	}
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.PostgresUrl == "" {
			return fmt.Errorf("POSTGRES_CONN_STR is required when DB_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	if c.DefaultFeedLimit < 1 || c.DefaultFeedLimit > c.MaxPageLimit {
		return fmt.Errorf("DEFAULT_FEED_LIMIT must be between 1 and MAX_PAGE_LIMIT")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
