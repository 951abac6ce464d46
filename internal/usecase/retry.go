package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shoeshop/internal/domain"
)

var retryBaseDelay = time.Second

// withRetry runs fn up to attempts times with exponential backoff.
// Domain errors are final and returned at once.
func withRetry(ctx context.Context, attempts int, log *slog.Logger, op string, fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}

		lastErr = err
		log.Error("operation attempt failed",
			"operation", op,
			"error", err,
			"retry", i+1,
			"retry_count", attempts,
		)

		if i == attempts-1 {
			break
		}
		delay := time.Duration(1<<uint(i)) * retryBaseDelay
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		}
	}
	return lastErr
}

func retryable(err error) bool {
	for _, final := range []error{
		domain.ErrValidation,
		domain.ErrRecordNotFound,
		domain.ErrInsufficientStock,
		domain.ErrInvalidStatus,
		domain.ErrDuplicate,
		context.Canceled,
		context.DeadlineExceeded,
	} {
		if errors.Is(err, final) {
			return false
		}
	}
	return true
}
