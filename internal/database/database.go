package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productcatalog/internal/logger"
	"productcatalog/internal/models"
	"productcatalog/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database operations
type Manager struct {
	db       *gorm.DB
	config   *Config
	strategy *ExecutionStrategy
}

// NewManager creates a new database manager
func NewManager(config *Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "sqlite":
		dialector = sqlite.Open(config.DSN())
	default:
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(logger.GormOptions{Level: config.LogLevel, SensitiveDataLogging: config.SensitiveDataLogging, SlowThreshold: config.SlowQueryThreshold}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{
		db:       db,
		config:   config,
		strategy: NewExecutionStrategy(config.MaxRetryCount, config.RetryBaseDelay),
	}, nil
}

// RunMigrations brings the schema up to date and makes sure the seed
// categories exist. PostgreSQL uses the versioned SQL migrations; SQLite
// is migrated from the models.
func (m *Manager) RunMigrations(ctx context.Context) error {
	logger.Get().Info("Running database migrations...")

	if m.config.Driver == "sqlite" {
		if err := AutoMigrate(m.db); err != nil {
			return err
		}
		if err := Seed(ctx, m.db); err != nil {
			return err
		}
		logger.Get().Info("Database migrations completed successfully")
		return nil
	}

	mig, err := NewMigrator(m.config.MigrateURL())
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// NewMigrator returns a golang-migrate instance reading the embedded SQL files.
func NewMigrator(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// AutoMigrate creates the catalog tables from the GORM models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Strategy returns the retry execution strategy configured for this database
func (m *Manager) Strategy() *ExecutionStrategy {
	return m.strategy
}

// CommandTimeout returns the per-unit-of-work timeout
func (m *Manager) CommandTimeout() time.Duration {
	return m.config.CommandTimeout
}

// Close releases the connection pool
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
