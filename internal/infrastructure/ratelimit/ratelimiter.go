// Package ratelimit limits requests per client key within a time window.
package ratelimit

import (
	"context"
	"time"
)

// Result describes one Allow decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int64
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (Result, error)
	Reset(ctx context.Context, key string) error
}

// Config is shared by every implementation.
type Config struct {
	Limit  int
	Window time.Duration
}

func remaining(limit int, used int64) int64 {
	r := int64(limit) - used
	if r < 0 {
		return 0
	}
	return r
}
