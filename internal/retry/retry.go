// Package retry wraps a remote call in a bounded, quota-aware exponential
// backoff loop.
//
// Only quota-class failures (HTTP 429, "quota", "rate limit",
// "RESOURCE_EXHAUSTED") are retried. Every other error is returned after the
// first attempt. The delay before retry n (0-based) is
// InitialDelay * Multiplier^n plus a random jitter in [0, MaxJitter).
// MaxJitter is capped at InitialDelay*(Multiplier-1) so consecutive delays
// strictly increase.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = time.Second
	DefaultMultiplier   = 2.0
)

// ErrRetriesExhausted wraps the last error once every retry has been used
var ErrRetriesExhausted = errors.New("retries exhausted")

// Policy configures Do
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   float64
	MaxJitter    time.Duration

	// Jitter returns a value in [0, max). Defaults to math/rand.
	Jitter func(max time.Duration) time.Duration
	// Sleep waits for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is called before each backoff sleep, with the 1-based retry number.
	OnRetry func(retry int, delay time.Duration, err error)
}

// DefaultPolicy returns the 3 retry / 1s / x2 policy with up to 1s of jitter
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		Multiplier:   DefaultMultiplier,
		MaxJitter:    DefaultInitialDelay,
	}
}

// StatusCoder is implemented by errors that carry an HTTP status
type StatusCoder interface {
	StatusCode() int
}

// IsQuotaError reports whether err signals rate limiting or quota exhaustion
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted")
}

// Do invokes op, retrying quota-class failures per p
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.normalized()

	var zero T
	var lastErr error
	for attempt := 0; ; attempt++ {
		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if !IsQuotaError(err) {
			return zero, err
		}
		if attempt >= p.MaxRetries {
			break
		}

		delay := p.Delay(attempt)
		log.Printf("[Retry] Quota error (retry %d/%d in %v): %v", attempt+1, p.MaxRetries, delay, err)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, delay, err)
		}
		if err := p.Sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, p.MaxRetries+1, lastErr)
}

// Delay returns the backoff before the retry following attempt (0-based)
func (p Policy) Delay(attempt int) time.Duration {
	p = p.normalized()
	base := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt))
	delay := time.Duration(base)
	if p.MaxJitter > 0 {
		delay += p.Jitter(p.MaxJitter)
	}
	return delay
}

func (p Policy) normalized() Policy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.InitialDelay < 0 {
		p.InitialDelay = 0
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}
	if limit := time.Duration(float64(p.InitialDelay) * (p.Multiplier - 1)); p.MaxJitter > limit {
		p.MaxJitter = limit
	}
	if p.Jitter == nil {
		p.Jitter = randomJitter
	}
	if p.Sleep == nil {
		p.Sleep = sleep
	}
	return p
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return rand.N(max)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
