package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Backoff tuning for transient invocation failures.
const (
	retryInitialInterval = 250 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
	retryMultiplier      = 2.0
)

// NewRetryMiddleware returns middleware that retries transient failures
// with exponential backoff. maxRetries counts retries after the initial
// attempt; zero disables retrying. Non-retryable errors and context
// cancellation end the attempt loop immediately.
func NewRetryMiddleware(maxRetries int, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "retry")

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if maxRetries <= 0 {
				return next.Handle(ctx, req)
			}

			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = retryInitialInterval
			bo.MaxInterval = retryMaxInterval
			bo.Multiplier = retryMultiplier

			var resp *Response
			attempt := 0

			operation := func() error {
				attempt++
				var err error
				resp, err = next.Handle(ctx, req)
				if err == nil {
					return nil
				}

				var llmErr *Error
				if errors.As(err, &llmErr) && !llmErr.Retryable() {
					return backoff.Permanent(err)
				}

				logger.WarnContext(ctx, "invocation attempt failed, will retry",
					"attempt", attempt,
					"max_attempts", maxRetries+1,
					"error", err)
				return err
			}

			policy := backoff.WithContext(
				backoff.WithMaxRetries(bo, uint64(maxRetries)), ctx)
			if err := backoff.Retry(operation, policy); err != nil {
				return nil, err
			}
			return resp, nil
		})
	}
}
