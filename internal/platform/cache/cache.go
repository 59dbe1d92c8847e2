// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package cache provides the TTL-indexed key-value store used as the
session/token index of the platform.

Every entry carries its own time-to-live. A read after the TTL has elapsed
behaves exactly as if the key was never written, regardless of backend.

Architecture:

  - Store: The backend-neutral contract (Put, Get, Delete).
  - MemoryStore: Process-local map with lazy expiry and a janitor sweep.
  - RedisStore: Redis-backed implementation for multi-process deployments.

Callers that need typed values go through the JSON codec helpers [PutAny]
and [GetAny]; a decode mismatch on read is a programming error and is
surfaced immediately rather than treated as a cache miss.
*/
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// # Store Contract

// Store is the minimal key-value contract with per-entry TTL.
//
// # Concurrency
//
// Implementations must be safe for unlimited concurrent callers without
// external locking. Last-writer-wins on concurrent Put to the same key.
type Store interface {

	/*
		Put stores value under key, replacing any existing entry and its TTL.

		Parameters:
		  - ctx: context.Context
		  - key: string
		  - value: string
		  - ttl: time.Duration (must be positive)

		Returns:
		  - error: Backend I/O failures
	*/
	Put(ctx context.Context, key, value string, ttl time.Duration) error

	/*
		Get returns the value for key.

		Description: The second return is false when the key was never set
		or its TTL has elapsed. No read ever returns a value past its TTL.

		Parameters:
		  - ctx: context.Context
		  - key: string

		Returns:
		  - string: Stored value
		  - bool: Presence flag
		  - error: Backend I/O failures
	*/
	Get(ctx context.Context, key string) (string, bool, error)

	/*
		Delete removes the entry for key. Deleting an absent key is a no-op.

		Parameters:
		  - ctx: context.Context
		  - key: string

		Returns:
		  - error: Backend I/O failures
	*/
	Delete(ctx context.Context, key string) error
}

// # Typed Access

// PutAny JSON-encodes value and stores it under key with the given TTL.
func PutAny[T any](ctx context.Context, store Store, key string, value T, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to encode value for key %q: %w", key, err)
	}
	return store.Put(ctx, key, string(encoded), ttl)
}

// GetAny reads the value under key and JSON-decodes it into T.
//
// A value that cannot be decoded into T indicates a key collision or a
// caller-side type error; it is returned as an error, never as a miss.
func GetAny[T any](ctx context.Context, store Store, key string) (T, bool, error) {
	var decoded T

	raw, found, err := store.Get(ctx, key)
	if err != nil || !found {
		return decoded, found, err
	}

	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return decoded, false, fmt.Errorf("cache: value under key %q is not a %T: %w", key, decoded, err)
	}

	return decoded, true, nil
}
