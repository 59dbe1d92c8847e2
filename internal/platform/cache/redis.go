// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// # Redis Store

// RedisStore is a [Store] backed by Redis.
//
// TTL enforcement is delegated entirely to Redis, so token state survives
// process restarts and is shared between replicas. Key naming is owned by
// the callers (see the auth token key builders).
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

/*
Put stores value under key with the given TTL.

Parameters:
  - ctx: context.Context
  - key: string
  - value: string
  - ttl: time.Duration

Returns:
  - error: Connectivity or command failures
*/
func (store *RedisStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := store.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_put_failed: %w", err)
	}
	return nil
}

/*
Get returns the value for key.

Description: redis.Nil (never set, expired, or evicted) is reported as
absent, not as an error.

Parameters:
  - ctx: context.Context
  - key: string

Returns:
  - string: Stored value
  - bool: Presence flag
  - error: Connectivity or command failures
*/
func (store *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_cache_get_failed: %w", err)
	}
	return value, true, nil
}

/*
Delete removes the entry for key. Deleting an absent key is a no-op.

Parameters:
  - ctx: context.Context
  - key: string

Returns:
  - error: Connectivity or command failures
*/
func (store *RedisStore) Delete(ctx context.Context, key string) error {
	if err := store.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_cache_delete_failed: %w", err)
	}
	return nil
}
