package database

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"productcatalog/internal/logger"
)

const maxRetryDelay = 5 * time.Second

// ExecutionStrategy replays a whole database operation when it fails with a
// transient fault. The operation passed to Execute must be self-contained:
// when it opens a transaction, begin and commit happen inside it so a replay
// never resumes half way.
type ExecutionStrategy struct {
	maxRetries int
	baseDelay  time.Duration
}

// NewExecutionStrategy returns a strategy retrying up to maxRetries times with
// exponential backoff starting at baseDelay.
func NewExecutionStrategy(maxRetries int, baseDelay time.Duration) *ExecutionStrategy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	return &ExecutionStrategy{maxRetries: maxRetries, baseDelay: baseDelay}
}

// Execute runs op, retrying transient failures. Failures are returned as
// *PersistenceError; cancellation is returned as the context error.
func (s *ExecutionStrategy) Execute(ctx context.Context, name string, op func(ctx context.Context) error) error {
	backoff := retry.NewExponential(s.baseDelay)
	backoff = retry.WithCappedDuration(maxRetryDelay, backoff)
	backoff = retry.WithMaxRetries(uint64(s.maxRetries), backoff)

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := Classify(name, op(ctx))
		if err == nil {
			return nil
		}

		var perr *PersistenceError
		if errors.As(err, &perr) && perr.Retryable() {
			logger.Get().Warnw("transient database failure",
				"operation", name,
				"attempt", attempt,
				"error", perr.Err.Error(),
			)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil && attempt > s.maxRetries && IsKind(err, KindTransient) {
		logger.Get().Errorw("database retries exhausted", "operation", name, "attempts", attempt)
	}
	return err
}

// WithoutRetries returns a strategy with the same settings that never retries.
// Operations nested inside an already retried transaction use it.
func (s *ExecutionStrategy) WithoutRetries() *ExecutionStrategy {
	return &ExecutionStrategy{maxRetries: 0, baseDelay: s.baseDelay}
}
