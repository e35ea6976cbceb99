package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrorKind classifies a persistence failure.
type ErrorKind int

const (
	// KindFatal failures will not succeed on retry.
	KindFatal ErrorKind = iota
	// KindTransient failures are connectivity or contention faults worth retrying.
	KindTransient
	// KindConflict is a unique constraint violation.
	KindConflict
	// KindForeignKey is a foreign key violation.
	KindForeignKey
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindConflict:
		return "conflict"
	case KindForeignKey:
		return "foreign_key"
	default:
		return "fatal"
	}
}

// PersistenceError is returned by repositories for any datastore failure.
type PersistenceError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Retryable reports whether the execution strategy may replay the operation.
func (e *PersistenceError) Retryable() bool { return e.Kind == KindTransient }

// Classify wraps err in a PersistenceError tagged with its kind. Context
// cancellation and deadline errors are returned unchanged so they propagate
// as cancellation rather than as a storage failure.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var perr *PersistenceError
	if errors.As(err, &perr) {
		return err
	}

	return &PersistenceError{Op: op, Kind: kindOf(err), Err: err}
}

// IsKind reports whether err is a PersistenceError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var perr *PersistenceError
	return errors.As(err, &perr) && perr.Kind == kind
}

func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return KindForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErrorKind(pgErr.Code)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique, sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return KindConflict
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey:
			return KindForeignKey
		case sqliteErr.Code == sqlite3.ErrBusy, sqliteErr.Code == sqlite3.ErrLocked:
			return KindTransient
		}
		return KindFatal
	}

	if pgconn.SafeToRetry(err) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}

	return KindFatal
}

func pgErrorKind(code string) ErrorKind {
	switch {
	case code == "23505":
		return KindConflict
	case code == "23503":
		return KindForeignKey
	case strings.HasPrefix(code, "08"), // connection exception
		code == "40001", // serialization_failure
		code == "40P01", // deadlock_detected
		code == "53300", // too_many_connections
		code == "57P01", // admin_shutdown
		code == "57P02", // crash_shutdown
		code == "57P03": // cannot_connect_now
		return KindTransient
	}
	return KindFatal
}
