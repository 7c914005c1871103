package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheService(client), mr
}

type entry struct {
	PhoneNumber string `json:"phoneNumber"`
}

func TestCacheService_GetSet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got entry
	assert.ErrorIs(t, c.Get(ctx, "42", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "42", entry{PhoneNumber: "+100"}, time.Minute))
	require.NoError(t, c.Get(ctx, "42", &got))
	assert.Equal(t, "+100", got.PhoneNumber)

	require.NoError(t, c.Delete(ctx, "42"))
	assert.ErrorIs(t, c.Get(ctx, "42", &got), ErrCacheMiss)
}

func TestCacheService_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", entry{PhoneNumber: "1"}, 8*time.Minute))
	mr.FastForward(7 * time.Minute)
	assert.True(t, mr.Exists("k"))

	mr.FastForward(2 * time.Minute)
	var got entry
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestCacheService_Lock(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	token, err := c.AcquireLock(ctx, "checkin_lock:1", 10*time.Second)
	require.NoError(t, err)
	_, err = c.AcquireLock(ctx, "checkin_lock:1", 10*time.Second)
	assert.ErrorIs(t, err, ErrAlreadyLocked)

	require.NoError(t, c.ReleaseLock(ctx, "checkin_lock:1", token))
	assert.False(t, mr.Exists("checkin_lock:1"))

	_, err = c.AcquireLock(ctx, "checkin_lock:1", 10*time.Second)
	require.NoError(t, err)
	mr.FastForward(11 * time.Second)
	_, err = c.AcquireLock(ctx, "checkin_lock:1", 10*time.Second)
	assert.NoError(t, err)
}

func TestCacheService_ReleaseKeepsForeignLock(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	stale, err := c.AcquireLock(ctx, "checkin_lock:1", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	current, err := c.AcquireLock(ctx, "checkin_lock:1", 10*time.Second)
	require.NoError(t, err)
	require.NotEqual(t, stale, current)

	assert.ErrorIs(t, c.ReleaseLock(ctx, "checkin_lock:1", stale), ErrLockNotHeld)
	assert.True(t, mr.Exists("checkin_lock:1"))

	require.NoError(t, c.ReleaseLock(ctx, "checkin_lock:1", current))
	assert.False(t, mr.Exists("checkin_lock:1"))
	assert.ErrorIs(t, c.ReleaseLock(ctx, "checkin_lock:1", current), ErrLockNotHeld)
}
