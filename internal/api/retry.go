package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryClient is a decorator that retries transient failures with
// exponential backoff and jitter. Only idempotent calls are retried:
// Register and SubmitAnswers change server state and go straight through.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

var _ Client = (*RetryClient)(nil)

// WithRetry wraps a Client with retry logic.
func WithRetry(c Client, cfg RetryConfig) Client {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryClient{inner: c, config: cfg}
}

func (r *RetryClient) Register(ctx context.Context, creds Credentials) (string, error) {
	return r.inner.Register(ctx, creds)
}

func (r *RetryClient) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	return retry(ctx, r.config, func() (string, error) {
		return r.inner.Authenticate(ctx, creds)
	})
}

func (r *RetryClient) FetchQuestions(ctx context.Context, username string) ([]Question, error) {
	return retry(ctx, r.config, func() ([]Question, error) {
		return r.inner.FetchQuestions(ctx, username)
	})
}

func (r *RetryClient) SubmitAnswers(ctx context.Context, sub Submission) (*ScoreReport, error) {
	return r.inner.SubmitAnswers(ctx, sub)
}

func retry[T any](ctx context.Context, cfg RetryConfig, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := range cfg.MaxAttempts {
		v, err := call()
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff(cfg, attempt)):
		}
	}

	return zero, lastErr
}

// shouldRetry reports whether err is worth another attempt.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// The server understood and said no; asking again will not change that.
	var rej *ErrRejected
	if errors.As(err, &rej) {
		return false
	}
	var mal *ErrMalformed
	if errors.As(err, &mal) {
		return false
	}

	// Timeouts, 5xx and network errors are transient.
	return true
}

// backoff computes the wait before the next attempt.
func backoff(cfg RetryConfig, attempt int) time.Duration {
	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
