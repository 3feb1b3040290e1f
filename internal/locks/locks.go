// Package locks serializes writers that must not interleave, such as two
// requests claiming the same author name.
package locks

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/observability"
)

// ErrLockTimeout is returned when a lock could not be acquired within the configured wait.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// ErrLockNotHeld is returned by an Unlock whose lock expired or was taken over.
var ErrLockNotHeld = errors.New("lock no longer held")

// Unlock releases a lock obtained from a Locker. Calling it more than once is harmless.
type Unlock func(ctx context.Context) error

// Locker hands out exclusive, key-scoped locks.
//
// Lock blocks until the key is free, the locker's wait elapses (ErrLockTimeout)
// or ctx is done (ctx.Err()).
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// Outcome labels for the lock wait histogram.
const (
	outcomeAcquired = "acquired"
	outcomeTimeout  = "timeout"
	outcomeCanceled = "canceled"
	outcomeError    = "error"
)

func observeWait(backend, outcome string, start time.Time) {
	observability.NameLockWait.WithLabelValues(backend, outcome).Observe(time.Since(start).Seconds())
}

// waitContext bounds ctx by wait. A non-positive wait leaves ctx unbounded.
func waitContext(ctx context.Context, wait time.Duration) (context.Context, context.CancelFunc) {
	if wait <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, wait)
}

// waitError maps an expired wait context to the error Lock returns.
func waitError(parent context.Context) (string, error) {
	if err := parent.Err(); err != nil {
		return outcomeCanceled, err
	}
	return outcomeTimeout, ErrLockTimeout
}
