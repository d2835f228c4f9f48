package ratelimit

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
)

// MemoryRateLimiter counts requests in fixed windows held in process memory.
// It is used when Redis is disabled; limits are per replica.
type MemoryRateLimiter struct {
	counters *cache.Cache
	config   Config
}

func NewMemoryRateLimiter(config Config) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		counters: cache.New(config.Window, 2*config.Window),
		config:   config,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (Result, error) {
	var used int64 = 1
	if err := l.counters.Add(key, int64(1), l.config.Window); err != nil {
		n, err := l.counters.IncrementInt64(key, 1)
		if err != nil {
			return Result{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
		}
		used = n
	}

	return Result{
		Allowed:   used <= int64(l.config.Limit),
		Limit:     l.config.Limit,
		Remaining: remaining(l.config.Limit, used),
	}, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.counters.Delete(key)
	return nil
}

// ItemCount is the number of keys currently tracked.
func (l *MemoryRateLimiter) ItemCount() int {
	return l.counters.ItemCount()
}

