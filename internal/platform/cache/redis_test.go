// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/cache"
)

// newRedisStore spins up an in-process miniredis and wraps it in a RedisStore.
func newRedisStore(t *testing.T) (*cache.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisStore(client), mini
}

/*
TestRedisStore_PutGetDelete verifies the Store contract against Redis.
*/
func TestRedisStore_PutGetDelete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	// 1. Missing key reads as absent, not as an error
	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	// 2. Round-trip
	require.NoError(t, store.Put(ctx, "k", "v", time.Minute))
	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)

	// 3. Idempotent delete
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	_, found, _ = store.Get(ctx, "k")
	assert.False(t, found)
}

/*
TestRedisStore_TTLExpiry verifies that Redis-side TTL elapse reads as absent.
*/
func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mini := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "session", "token", 30*time.Second))

	_, found, _ := store.Get(ctx, "session")
	assert.True(t, found)

	// Advance miniredis' clock past the TTL
	mini.FastForward(31 * time.Second)

	_, found, err := store.Get(ctx, "session")
	require.NoError(t, err)
	assert.False(t, found)
}

/*
TestRedisStore_PutOverwritesTTL verifies that re-putting a key resets its TTL.
*/
func TestRedisStore_PutOverwritesTTL(t *testing.T) {
	store, mini := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "old", 10*time.Second))
	require.NoError(t, store.Put(ctx, "k", "new", time.Minute))

	// The first TTL would have expired here; the rewrite extended it.
	mini.FastForward(30 * time.Second)

	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", value)
}
