package database

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"productcatalog/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string

	MaxOpenConns int
	MaxIdleConns int

	CommandTimeout time.Duration
	MaxRetryCount  int
	RetryBaseDelay time.Duration

	LogLevel             string
	SensitiveDataLogging bool
	SlowQueryThreshold   time.Duration
}

// NewConfig derives the database configuration from the application configuration
func NewConfig(app *config.Config) *Config {
	return &Config{
		Driver:     app.DBDriver,
		Host:       app.DBHost,
		Port:       app.DBPort,
		User:       app.DBUser,
		Password:   app.DBPassword,
		DBName:     app.DBName,
		SSLMode:    app.DBSSLMode,
		SQLitePath: app.DBSQLitePath,

		MaxOpenConns: app.DBMaxOpenConns,
		MaxIdleConns: app.DBMaxIdleConns,

		CommandTimeout: app.DBCommandTimeout,
		MaxRetryCount:  app.DBMaxRetryCount,
		RetryBaseDelay: app.DBRetryBaseDelay,

		LogLevel:             app.DBLogLevel,
		SensitiveDataLogging: app.DBSensitiveDataLogging,
		SlowQueryThreshold:   app.DBSlowQueryThreshold,
	}
}

// DSN returns the driver-specific connection string
func (c *Config) DSN() string {
	if c.Driver == "sqlite" {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.SQLitePath)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(c.Host), dsnValue(c.Port), dsnValue(c.User), dsnValue(c.Password), dsnValue(c.DBName), dsnValue(c.SSLMode))
}

// MigrateURL returns the URL form of the PostgreSQL connection used by golang-migrate
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// dsnValue quotes a keyword/value connection string value when it is empty
// or contains spaces, quotes or backslashes.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
