// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package cache

import (
	"context"
	"sync"
	"time"
)

// janitorInterval is how often the background sweep evicts expired entries.
// Expiry correctness never depends on the sweep; reads check TTL themselves.
const janitorInterval = 1 * time.Minute

// entry is a single cached value with its absolute expiry instant.
type entry struct {
	value     string
	expiresAt time.Time
}

// expired reports whether the entry's TTL has elapsed at the given instant.
func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// # In-Memory Store

// MemoryStore is a process-local [Store] backed by a mutex-guarded map.
//
// It is the default backend for single-instance deployments where tokens
// do not need to survive a process restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore constructs a [MemoryStore] and starts its janitor goroutine.
//
// Call [MemoryStore.Close] on shutdown to stop the janitor.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}

	go store.janitor()

	return store
}

// Put stores value under key, replacing any existing entry and its TTL.
func (store *MemoryStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Get returns the value for key, treating expired entries as absent.
func (store *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.RLock()
	cached, found := store.entries[key]
	store.mu.RUnlock()

	if !found {
		return "", false, nil
	}

	// Lazy expiry: an entry past its TTL is indistinguishable from absent,
	// even before the janitor has run.
	if cached.expired(time.Now()) {
		store.mu.Lock()
		// Re-check under the write lock: a concurrent Put may have replaced
		// the entry with a fresh one since the read above.
		if current, stillThere := store.entries[key]; stillThere && current.expired(time.Now()) {
			delete(store.entries, key)
		}
		store.mu.Unlock()
		return "", false, nil
	}

	return cached.value, true, nil
}

// Delete removes the entry for key. Deleting an absent key is a no-op.
func (store *MemoryStore) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, key)
	return nil
}

// Close stops the janitor goroutine. The store remains usable afterwards;
// expiry falls back to the lazy check on read.
func (store *MemoryStore) Close() {
	store.closeOnce.Do(func() {
		close(store.done)
	})
}

// janitor periodically evicts expired entries so that long-dead keys do not
// accumulate between reads.
func (store *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			store.mu.Lock()
			for key, cached := range store.entries {
				if cached.expired(now) {
					delete(store.entries, key)
				}
			}
			store.mu.Unlock()
		case <-store.done:
			return
		}
	}
}
