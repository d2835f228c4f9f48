package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func exerciseLimiter(t *testing.T, limiter RateLimiter) {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, int64(2-i), res.Remaining)
	}

	res, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, res.Allowed, "4th request should be denied")
	assert.Zero(t, res.Remaining)

	res, err = limiter.Allow(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "keys are independent")

	require.NoError(t, limiter.Reset(ctx, "client-a"))
	res, err = limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "reset clears the window")
}

func TestRedisRateLimiter(t *testing.T) {
	client, _ := setupTestRedis(t)
	exerciseLimiter(t, NewRedisRateLimiter(client, Config{Limit: 3, Window: time.Minute}))
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Config{Limit: 1, Window: time.Minute})

	start := time.Now()
	limiter.now = func() time.Time { return start }

	res, err := limiter.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	limiter.now = func() time.Time { return start.Add(2 * time.Minute) }
	res, err = limiter.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisRateLimiter_ConnectionError(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Config{Limit: 1, Window: time.Minute})
	mr.Close()

	_, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestMemoryRateLimiter(t *testing.T) {
	limiter := NewMemoryRateLimiter(Config{Limit: 3, Window: time.Minute})
	exerciseLimiter(t, limiter)
	assert.Equal(t, 2, limiter.ItemCount())
}
