package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"duplicate key", gorm.ErrDuplicatedKey, KindConflict},
		{"foreign key", gorm.ErrForeignKeyViolated, KindForeignKey},
		{"pg unique", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, KindForeignKey},
		{"pg connection failure", &pgconn.PgError{Code: "08006"}, KindTransient},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, KindTransient},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, KindTransient},
		{"pg admin shutdown", &pgconn.PgError{Code: "57P01"}, KindTransient},
		{"pg syntax error", &pgconn.PgError{Code: "42601"}, KindFatal},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, KindConflict},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, KindForeignKey},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, KindTransient},
		{"sqlite locked", sqlite3.Error{Code: sqlite3.ErrLocked}, KindTransient},
		{"bad connection", fmt.Errorf("query: %w", driver.ErrBadConn), KindTransient},
		{"unexpected eof", io.ErrUnexpectedEOF, KindTransient},
		{"other", errors.New("boom"), KindFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("op", tt.err)

			var perr *PersistenceError
			if assert.ErrorAs(t, err, &perr) {
				assert.Equal(t, tt.want, perr.Kind)
				assert.Equal(t, "op", perr.Op)
				assert.ErrorIs(t, err, tt.err)
				assert.Equal(t, tt.want == KindTransient, perr.Retryable())
			}
		})
	}
}

func TestClassify_PassThrough(t *testing.T) {
	assert.NoError(t, Classify("op", nil))
	assert.Same(t, context.Canceled, Classify("op", context.Canceled))
	assert.Same(t, context.DeadlineExceeded, Classify("op", context.DeadlineExceeded))

	inner := &PersistenceError{Op: "inner", Kind: KindConflict, Err: errors.New("dup")}
	assert.Same(t, inner, Classify("outer", inner))
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("create: %w", Classify("product.create", gorm.ErrDuplicatedKey))
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindForeignKey))
	assert.False(t, IsKind(errors.New("plain"), KindFatal))
}
