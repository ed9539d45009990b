package redis

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client, err := NewClient(NewRedisConfig().WithHost(server.Host()).WithPort(port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(NewRedisConfig().WithPort(0))
	assert.Error(t, err)

	_, err = NewClient(NewRedisConfig().WithHost(""))
	assert.Error(t, err)
}

func TestLockWithFunc_RunsWhenFree(t *testing.T) {
	client, server := newTestClient(t)
	ran := false

	err := LockWithFunc(context.Background(), client, "job", NewLockOptions(), func() error {
		ran = true
		assert.True(t, server.Exists("job"))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, server.Exists("job"), "lock must be released")
}

func TestLockWithFunc_SkipsWhenHeld(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	holder := NewLock(client, "job", NewLockOptions().WithLockNamespace("ns"))
	require.NoError(t, holder.Lock(ctx))

	ran := false
	err := LockWithFunc(ctx, client, "job", NewLockOptions().WithLockNamespace("ns"), func() error {
		ran = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, ran)
	require.NoError(t, holder.Unlock(ctx))
}

func TestLockWithFunc_PropagatesFunctionError(t *testing.T) {
	client, _ := newTestClient(t)
	boom := errors.New("boom")

	err := LockWithFunc(context.Background(), client, "job", nil, func() error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestUnlock_ExpiredLockIsNotHeld(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	lock := NewLock(client, "job", NewLockOptions().WithTTL(time.Second))
	require.NoError(t, lock.Lock(ctx))
	server.FastForward(2 * time.Second)

	assert.ErrorIs(t, lock.Unlock(ctx), ErrLockNotHeld)
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()
	limiter := NewRateLimiter(client, NewRateLimiterOptions().WithMaxRequests(2).WithWindow(time.Minute))

	first, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Positive(t, third.RetryAfter)
	assert.LessOrEqual(t, third.RetryAfter, time.Minute)

	other, err := limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "keys are counted independently")

	server.FastForward(time.Minute + time.Second)

	afterWindow, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, afterWindow.Allowed)
}

func TestRateLimiter_Reset(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	limiter := NewRateLimiter(client, NewRateLimiterOptions().WithMaxRequests(1))

	_, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	blocked, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	require.False(t, blocked.Allowed)

	require.NoError(t, limiter.Reset(ctx, "key"))

	allowed, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.True(t, allowed.Allowed)
}

func TestHealthCheck(t *testing.T) {
	client, server := newTestClient(t)
	checker := NewHealthChecker(client)

	up := checker.HealthCheck(context.Background())
	assert.Equal(t, StatusUp, up.Status)
	assert.Equal(t, client.GetConfig().Addr(), up.Details["addr"])

	server.Close()

	down := checker.HealthCheck(context.Background())
	assert.Equal(t, StatusDown, down.Status)
	assert.Contains(t, down.Details["last_error"], "ping failed")
}
