// Package timeout bounds individual blocking calls to external systems.
//
// The wrapped function gets a context carrying the deadline. If it ignores the
// context, the caller still returns on time and the result is discarded.
package timeout

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when the call did not finish within its budget.
var ErrTimeout = errors.New("call timed out")

// Do runs fn with a deadline of d. A non-positive d disables the bound.
//
// Example:
//
//	pool, err := timeout.Do(ctx, 5*time.Second, func(ctx context.Context) ([]*helper.Candidate, error) {
//	    return reader.ListAvailableNear(ctx, origin, 25)
//	})
func Do[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)

	go func() {
		v, err := fn(callCtx)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-callCtx.Done():
		var zero T
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, fmt.Errorf("%w after %s", ErrTimeout, d)
	}
}

// Run is Do for calls without a result.
func Run(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	_, err := Do(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
