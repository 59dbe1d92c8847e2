// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package user defines the blog owner/administrator account entity and its
data access contract.

The authentication core consumes this package as a collaborator: it looks
accounts up by id, username, or email, verifies credential material, and
persists password changes. Everything else about account management lives
outside the authentication core.
*/
package user

import (
	"context"
	"time"
)

// # MFA

// MFAType enumerates the multi-factor verification modes an account can use.
type MFAType int

const (
	// MFANone disables the secondary code check at login.
	MFANone MFAType = 0

	// MFATFATotp gates login behind a time-based one-time code (RFC 6238).
	MFATFATotp MFAType = 1
)

// UseMFA reports whether the type requires a code at login.
func (t MFAType) UseMFA() bool {
	return t != MFANone
}

// # Domain Entity

// User represents a registered account of the Inkwell platform.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	MFAType      MFAType   `json:"mfa_type"`
	MFAKey       string    `json:"-"` // TOTP secret. Omitted for security.
	Avatar       string    `json:"avatar,omitempty"`
	Description  string    `json:"description,omitempty"`
	ExpireTime   time.Time `json:"expire_time,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Expired reports whether the account's expiry timestamp has passed.
// A zero ExpireTime means the account never expires.
func (u *User) Expired(now time.Time) bool {
	return !u.ExpireTime.IsZero() && u.ExpireTime.Before(now)
}

// # Data Access

// Repository defines the data access contract the authentication core
// requires from the account store.
type Repository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: int

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByID(ctx context.Context, id int) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		FindFirst returns the first account in the system.

		Description: Used by the single-operator convenience mode where the
		deployment runs with authentication disabled.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when no account exists yet
	*/
	FindFirst(ctx context.Context) (*User, error)

	/*
		UpdatePassword replaces only the account's password hash.

		Parameters:
		  - ctx: context.Context
		  - userID: int
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(ctx context.Context, userID int, newHash string) error
}
