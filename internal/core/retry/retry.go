// Package retry re-executes a unit of work when it fails with a retryable failure kind.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
)

// Unit is a re-executable piece of work. Each call must start from scratch:
// entities are re-read, guard conditions re-evaluated.
type Unit func(ctx context.Context) error

// Backoff computes the delay before the given attempt (attempt >= 2).
type Backoff interface {
	Delay(attempt int) time.Duration
}

// FixedBackoff waits the same delay between every attempt.
type FixedBackoff time.Duration

func (b FixedBackoff) Delay(int) time.Duration {
	return time.Duration(b)
}

// ExponentialBackoff doubles the base delay per attempt up to Max and applies full jitter.
type ExponentialBackoff struct {
	Base time.Duration
	Max  time.Duration
}

func (b ExponentialBackoff) Delay(attempt int) time.Duration {
	if b.Base <= 0 {
		return 0
	}
	d := b.Base
	for i := 2; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			d = b.Max
			break
		}
	}
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	return time.Duration(rand.Int63n(int64(d) + 1))
}

// Policy describes which failures are retried, how often, and how long to wait in between.
type Policy struct {
	Name        string
	Retryable   []error
	MaxAttempts int
	Backoff     Backoff
	// OnRetry, if set, is called after a retryable failure and before the backoff sleep.
	OnRetry func(ctx context.Context, attempt int, err error)
	// OnExhausted, if set, is called once the attempt budget is used up.
	OnExhausted func(ctx context.Context, attempts int, err error)
}

// VersionPolicy retries optimistic locking failures: 3 attempts, 1 s apart.
func VersionPolicy() Policy {
	return Policy{
		Name:        "version",
		Retryable:   []error{apperrors.ErrStaleVersion},
		MaxAttempts: 3,
		Backoff:     FixedBackoff(time.Second),
	}
}

// UniquePolicy retries unique-index collisions once, 1 s later.
func UniquePolicy() Policy {
	return Policy{
		Name:        "unique",
		Retryable:   []error{apperrors.ErrUniqueViolation},
		MaxAttempts: 2,
		Backoff:     FixedBackoff(time.Second),
	}
}

// IsRetryable reports whether err matches one of the policy's retryable kinds.
func (p Policy) IsRetryable(err error) bool {
	for _, target := range p.Retryable {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ExhaustedError is returned when every attempt failed with a retryable error.
type ExhaustedError struct {
	Policy   string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry policy %q exhausted after %d attempts: %v", e.Policy, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do runs unit until it succeeds, fails with a non-retryable error, the attempt budget is
// used up, or ctx is done. Non-retryable errors are returned unchanged. The backoff sleep
// is abandoned as soon as ctx is cancelled.
func Do(ctx context.Context, p Policy, unit Unit) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return fmt.Errorf("%w (last failure: %v)", err, lastErr)
			}
			return err
		}

		lastErr = unit(ctx)
		if lastErr == nil {
			return nil
		}
		if !p.IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		if p.OnRetry != nil {
			p.OnRetry(ctx, attempt, lastErr)
		}
		if err := sleep(ctx, p.delay(attempt+1)); err != nil {
			return fmt.Errorf("%w (last failure: %v)", err, lastErr)
		}
	}

	if p.OnExhausted != nil {
		p.OnExhausted(ctx, maxAttempts, lastErr)
	}
	return &ExhaustedError{Policy: p.Name, Attempts: maxAttempts, Err: lastErr}
}

func (p Policy) delay(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff.Delay(attempt)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
