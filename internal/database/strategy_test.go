package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"productcatalog/internal/logger"
)

func init() {
	logger.Init("test")
}

var errTransient = &PersistenceError{Op: "test", Kind: KindTransient, Err: errors.New("connection reset")}

func TestExecutionStrategy_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		s := NewExecutionStrategy(3, time.Millisecond)
		calls := 0

		err := s.Execute(ctx, "op", func(context.Context) error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		s := NewExecutionStrategy(2, time.Millisecond)
		calls := 0

		err := s.Execute(ctx, "op", func(context.Context) error {
			calls++
			return errTransient
		})

		assert.True(t, IsKind(err, KindTransient), "expected transient error, got %v", err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry fatal failures", func(t *testing.T) {
		s := NewExecutionStrategy(5, time.Millisecond)
		calls := 0

		err := s.Execute(ctx, "op", func(context.Context) error {
			calls++
			return gorm.ErrDuplicatedKey
		})

		assert.True(t, IsKind(err, KindConflict), "expected conflict, got %v", err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		s := NewExecutionStrategy(5, 50*time.Millisecond)
		cctx, cancel := context.WithCancel(ctx)
		calls := 0

		err := s.Execute(cctx, "op", func(context.Context) error {
			calls++
			cancel()
			return errTransient
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("without retries runs once", func(t *testing.T) {
		s := NewExecutionStrategy(5, time.Millisecond).WithoutRetries()
		calls := 0

		err := s.Execute(ctx, "op", func(context.Context) error {
			calls++
			return errTransient
		})

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestNewExecutionStrategy_Defaults(t *testing.T) {
	s := NewExecutionStrategy(-1, 0)
	assert.Equal(t, 0, s.maxRetries)
	assert.Equal(t, 100*time.Millisecond, s.baseDelay)
}
