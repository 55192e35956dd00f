// Package retry provides exponential backoff for transient failures of the
// underlying CLI (connection resets, rate limits, gateway errors).
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/estudosdevops/argo-manager/internal/logger"
)

// Config defines how retry behavior should work.
type Config struct {
	MaxAttempts int           // Maximum number of attempts (e.g., 3)
	BaseDelay   time.Duration // Initial delay (e.g., 1s)
	MaxDelay    time.Duration // Maximum delay (e.g., 30s)
	Jitter      bool          // Add randomness?
}

// Retryer executes functions with retry.
type Retryer interface {
	Do(ctx context.Context, fn func() error) error
}

// exponentialBackoff is the concrete Retryer implementation.
type exponentialBackoff struct {
	config Config
	log    *slog.Logger
}

// New creates a new Retryer instance with the given configuration.
func New(config Config) Retryer {
	return &exponentialBackoff{
		config: config,
		log:    logger.Get(),
	}
}

// Do executes fn, retrying retryable failures with exponential backoff
// until it succeeds, the attempts run out, or ctx is done.
func (e *exponentialBackoff) Do(ctx context.Context, fn func() error) error {
	for attempt := 1; attempt <= e.config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			if attempt > 1 {
				e.log.Info("Operation succeeded after retry",
					"attempt", attempt,
					"max_attempts", e.config.MaxAttempts)
			}
			return nil
		}

		if !IsRetryable(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}

		if attempt == e.config.MaxAttempts {
			return fmt.Errorf("max attempts reached (%d): %w", e.config.MaxAttempts, err)
		}

		delay := e.calculateDelay(attempt)
		e.log.Warn("Operation attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", e.config.MaxAttempts,
			"delay", delay,
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("unexpected retry loop exit")
}

// calculateDelay calculates exponential delay with optional jitter.
func (e *exponentialBackoff) calculateDelay(attempt int) time.Duration {
	// baseDelay * 2^(attempt-1), capped at MaxDelay.
	exponentialDelay := float64(e.config.BaseDelay) * math.Pow(2, float64(attempt-1))
	if exponentialDelay > float64(e.config.MaxDelay) {
		exponentialDelay = float64(e.config.MaxDelay)
	}

	delay := time.Duration(exponentialDelay)

	if e.config.Jitter {
		// Up to 25% random variation to avoid thundering herd.
		jitterRange := float64(delay) * 0.25
		// #nosec G404 - math/rand is fine for jitter (not cryptographic)
		delay += time.Duration(rand.Float64() * jitterRange)
	}

	return delay
}

// IsRetryable determines which errors should trigger retry and which are
// permanent, based on the CLI's error text.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Temporary problems worth another attempt.
	retryableErrors := []string{
		"timeout",
		"connection refused",
		"connection reset",
		"network is unreachable",
		"temporary failure",
		"rate limit",
		"throttling",
		"service unavailable",
		"internal server error",
		"bad gateway",
		"gateway timeout",
	}
	for _, retryable := range retryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}

	// Permanent problems: retrying only repeats the failure.
	nonRetryableErrors := []string{
		"permission denied",
		"access denied",
		"unauthorized",
		"forbidden",
		"not found",
		"invalid argument",
		"bad request",
		"invalid credentials",
	}
	for _, nonRetryable := range nonRetryableErrors {
		if strings.Contains(errStr, nonRetryable) {
			return false
		}
	}

	// Unknown errors are not retried: a fan-out across a fleet should not
	// triple the load on every cluster for errors we cannot classify.
	return false
}

// CLIPolicy is the retry policy applied to read-only CLI fetches.
var CLIPolicy = Config{
	MaxAttempts: 3,
	BaseDelay:   1 * time.Second,
	MaxDelay:    15 * time.Second,
	Jitter:      true,
}
