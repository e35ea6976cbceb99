// Package logger provides structured logging using Zap.
package logger

import (
	"sync"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder. For all other environments,
// it uses a human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		switch env {
		case "production":
			base, err = zap.NewProduction()
		case "test":
			base = zap.NewNop()
		default:
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

// GormOptions controls the diagnostic output of the ORM.
type GormOptions struct {
	Level                string // silent, error, warn, info
	SensitiveDataLogging bool   // log bound parameter values
	SlowThreshold        time.Duration
}

// NewGormLogger returns a GORM logger that writes through the global Zap logger.
func NewGormLogger(opts GormOptions) gormlogger.Interface {
	writer := zap.NewStdLog(Get().Desugar().WithOptions(zap.AddCallerSkip(3)).Named("gorm"))

	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             opts.SlowThreshold,
		LogLevel:                  parseGormLevel(opts.Level),
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      !opts.SensitiveDataLogging,
		Colorful:                  false,
	})
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
