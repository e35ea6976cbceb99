package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"productcatalog/internal/logger"
)

// Config holds API server configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBSQLitePath string

	DBMaxOpenConns int
	DBMaxIdleConns int

	// Execution strategy
	DBCommandTimeout time.Duration
	DBMaxRetryCount  int
	DBRetryBaseDelay time.Duration

	// Diagnostics
	DBLogLevel             string
	DBSensitiveDataLogging bool
	DBSlowQueryThreshold   time.Duration
}

// WebConfig holds configuration for the web front-end.
type WebConfig struct {
	Env            string
	Port           string
	CatalogAPIURL  string
	RequestTimeout time.Duration
}

// Load loads API configuration from environment variables
func Load() (*Config, error) {
	loadDotEnv()

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "catalog"),
		DBPassword:   getEnv("DB_PASSWORD", "catalog"),
		DBName:       getEnv("DB_NAME", "catalog"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		DBSQLitePath: getEnv("DB_SQLITE_PATH", "catalog.db"),

		DBLogLevel: strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
	}

	var err error
	if config.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 100); err != nil {
		return nil, err
	}
	if config.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	if config.DBCommandTimeout, err = getDuration("DB_COMMAND_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if config.DBMaxRetryCount, err = getInt("DB_MAX_RETRY_COUNT", 3); err != nil {
		return nil, err
	}
	if config.DBRetryBaseDelay, err = getDuration("DB_RETRY_BASE_DELAY", 200*time.Millisecond); err != nil {
		return nil, err
	}
	if config.DBSensitiveDataLogging, err = getBool("DB_SENSITIVE_DATA_LOGGING", false); err != nil {
		return nil, err
	}
	if config.DBSlowQueryThreshold, err = getDuration("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadWeb loads web front-end configuration from environment variables.
func LoadWeb() (*WebConfig, error) {
	loadDotEnv()

	cfg := &WebConfig{
		Env:           getEnv("ENV", "development"),
		Port:          getEnv("WEB_PORT", "8081"),
		CatalogAPIURL: strings.TrimRight(getEnv("CATALOG_API_URL", "http://localhost:8080"), "/"),
	}

	timeout, err := getDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", timeout)
	}
	cfg.RequestTimeout = timeout

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: must be postgres or sqlite", c.DBDriver)
	}

	switch c.DBLogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("invalid DB_LOG_LEVEL %q: must be silent, error, warn, or info", c.DBLogLevel)
	}

	if c.DBMaxRetryCount < 0 {
		return fmt.Errorf("DB_MAX_RETRY_COUNT must not be negative, got %d", c.DBMaxRetryCount)
	}
	if c.DBCommandTimeout <= 0 {
		return fmt.Errorf("DB_COMMAND_TIMEOUT must be positive, got %v", c.DBCommandTimeout)
	}
	return nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug("no .env file found, using process environment")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s: must be true, false, 1, or 0, got %q", key, s)
	}
}
