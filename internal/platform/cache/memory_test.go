// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/cache"
)

/*
TestMemoryStore_PutGet verifies basic storage and retrieval.
*/
func TestMemoryStore_PutGet(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	// 1. Missing key reads as absent
	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	// 2. Stored value reads back
	require.NoError(t, store.Put(ctx, "k", "v", time.Minute))
	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)

	// 3. Put replaces both value and TTL
	require.NoError(t, store.Put(ctx, "k", "v2", time.Minute))
	value, found, _ = store.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, "v2", value)
}

/*
TestMemoryStore_TTLExpiry verifies that no read returns a value past its TTL.
*/
func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "short", "gone-soon", 20*time.Millisecond))

	// 1. Readable within the TTL
	_, found, _ := store.Get(ctx, "short")
	assert.True(t, found)

	// 2. Absent after the TTL elapses, without waiting for the janitor
	time.Sleep(40 * time.Millisecond)
	_, found, _ = store.Get(ctx, "short")
	assert.False(t, found)
}

/*
TestMemoryStore_DeleteIdempotent verifies Delete never errors, even when
the key is absent.
*/
func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "v", time.Minute))
	require.NoError(t, store.Delete(ctx, "k"))

	_, found, _ := store.Get(ctx, "k")
	assert.False(t, found)

	// Deleting again is harmless
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "never-existed"))
}

/*
TestMemoryStore_ConcurrentAccess hammers the store from many goroutines on
both shared and independent keys.
*/
func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	const workers = 32
	const iterations = 200

	var wg sync.WaitGroup
	wg.Add(workers)

	for worker := 0; worker < workers; worker++ {
		go func(id int) {
			defer wg.Done()
			own := fmt.Sprintf("worker.%d", id)
			for i := 0; i < iterations; i++ {
				_ = store.Put(ctx, own, "mine", time.Minute)
				_ = store.Put(ctx, "shared", "contended", time.Minute)
				_, _, _ = store.Get(ctx, own)
				_, _, _ = store.Get(ctx, "shared")
				_ = store.Delete(ctx, own)
			}
		}(worker)
	}

	wg.Wait()

	// Last-writer-wins: the shared key must hold a coherent value.
	value, found, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "contended", value)
}

/*
TestCodec_RoundTrip verifies the typed JSON helpers on top of a raw store.
*/
func TestCodec_RoundTrip(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	// 1. Integer round-trip (user IDs are stored this way)
	require.NoError(t, cache.PutAny(ctx, store, "user.id", 42, time.Minute))
	userID, found, err := cache.GetAny[int](ctx, store, "user.id")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 42, userID)

	// 2. Absent key decodes to zero value without error
	_, found, err = cache.GetAny[int](ctx, store, "nope")
	require.NoError(t, err)
	assert.False(t, found)

	// 3. Type mismatch is an error, never a silent miss
	require.NoError(t, cache.PutAny(ctx, store, "text", "not-a-number", time.Minute))
	_, _, err = cache.GetAny[int](ctx, store, "text")
	assert.Error(t, err)
}
