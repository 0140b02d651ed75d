// Package ratelimit counts attempts per key in fixed windows.
package ratelimit

import (
	"context"
	"time"
)

type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the time left in the current window.
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func result(count, limit int, retryAfter time.Duration) Result {
	return Result{
		Allowed:    count <= limit,
		Remaining:  max(limit-count, 0),
		RetryAfter: retryAfter,
	}
}
