// Package ratelimit implements a fixed-window request limiter keyed by
// caller identity. The window state lives in Redis when available so the
// limit holds across replicas; a per-process memory store is the fallback.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one limiter check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter enforces a fixed request budget per key per window.
type Limiter struct {
	store  CounterStore
	limit  int
	window time.Duration
}

func New(store CounterStore, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Check records one request against the key's window and reports whether it
// fits the budget.
func (l *Limiter) Check(ctx context.Context, key string) (*Result, error) {
	count, ttl, err := l.store.Hit(ctx, "ratelimit:"+key, l.window)
	if err != nil {
		return nil, err
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return &Result{
		Allowed:    count <= int64(l.limit),
		Limit:      l.limit,
		Remaining:  remaining,
		RetryAfter: ttl,
	}, nil
}
