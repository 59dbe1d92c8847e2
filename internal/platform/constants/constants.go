// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Token transport names and cache key taxonomy.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "inkwell-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Header Names

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Token Transport

const (
	// AdminTokenHeaderName is the request header carrying the access token.
	AdminTokenHeaderName = "Admin-Authorization"

	// AdminTokenQueryName is the query parameter carrying the access token
	// when a header cannot be set (e.g. image/file links).
	AdminTokenQueryName = "admin_token"
)

// # Cache Key Taxonomy
//
// Namespaced so the token index can never collide with unrelated cache usage.
// These values are part of the deployment contract: they must stay stable
// across process restarts when the store is externally backed (Redis).

const (
	// CachePrefixAccessTokenByUser maps user id -> current access token.
	CachePrefixAccessTokenByUser = "inkwell.admin.access_token."

	// CachePrefixRefreshTokenByUser maps user id -> current refresh token.
	CachePrefixRefreshTokenByUser = "inkwell.admin.refresh_token."

	// CachePrefixUserByAccessToken maps access token -> user id.
	CachePrefixUserByAccessToken = "inkwell.admin.token.access."

	// CachePrefixUserByRefreshToken maps refresh token -> user id.
	CachePrefixUserByRefreshToken = "inkwell.admin.token.refresh."

	// CacheKeyResetCode is the fixed key holding the outstanding password
	// reset code. Global, not per-user: at most one code is live at a time.
	CacheKeyResetCode = "inkwell.reset.code"
)

// # Password Reset

const (
	// ResetCodeTTL is how long a password reset code stays redeemable.
	ResetCodeTTL = 5 * time.Minute

	// ResetCodeLength is the number of digits in a reset code.
	ResetCodeLength = 6
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers = "users"
)
