//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordwatch/internal/ratelimit"
	"wordwatch/pkg/testutil/containers"
)

func TestRedisStore_FixedWindow(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	store := ratelimit.NewRedisStore(rc.Client)

	count, ttl, err := store.Hit(ctx, "ratelimit:bot:a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Greater(t, ttl, 50*time.Second)

	count, _, err = store.Hit(ctx, "ratelimit:bot:a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// The expiry marks the window start; later hits must not extend it.
	firstTTL := ttl
	time.Sleep(1100 * time.Millisecond)
	_, ttl, err = store.Hit(ctx, "ratelimit:bot:a", time.Minute)
	require.NoError(t, err)
	assert.Less(t, ttl, firstTTL)

	// Separate keys hold separate windows.
	count, _, err = store.Hit(ctx, "ratelimit:bot:b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStore_LimiterEndToEnd(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	limiter := ratelimit.New(ratelimit.NewRedisStore(rc.Client), 2, time.Minute)

	for i := 0; i < 2; i++ {
		result, err := limiter.Check(ctx, "bot:c")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	result, err := limiter.Check(ctx, "bot:c")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Positive(t, result.RetryAfter)
}
