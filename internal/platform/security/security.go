// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package security carries "who is making this request" through one request's
call chain without cross-talk between concurrent requests.

The original design bound identity to the worker thread; here the carrier
rides the request's [context.Context] instead. The gatekeeper attaches a
fresh [Context] at request entry and clears it at request exit, so identity
can never outlive the request or leak into a pooled execution slot.

Architecture:

  - UserDetail: Read-only snapshot of the resolved principal.
  - Authentication: Wraps one UserDetail for the request's duration.
  - Context: The per-request holder; empty means anonymous.
*/
package security

import (
	"context"
	"sync/atomic"

	"github.com/inkwell-dev/inkwell/internal/platform/ctxkey"
	"github.com/inkwell-dev/inkwell/internal/users/user"
)

// # Principal Snapshot

// UserDetail is a read-only snapshot of the resolved principal.
type UserDetail struct {
	user *user.User
}

// NewUserDetail wraps a resolved account.
func NewUserDetail(account *user.User) *UserDetail {
	return &UserDetail{user: account}
}

// User returns the wrapped account.
func (detail *UserDetail) User() *user.User {
	return detail.user
}

// # Authentication

// Authentication wraps one resolved [UserDetail] for the duration of a
// request. It is read-only after construction.
type Authentication struct {
	detail *UserDetail
}

// NewAuthentication constructs an [Authentication] around the given detail.
func NewAuthentication(detail *UserDetail) *Authentication {
	return &Authentication{detail: detail}
}

// Detail returns the wrapped principal snapshot.
func (authentication *Authentication) Detail() *UserDetail {
	return authentication.detail
}

// # Security Context

// Context holds the current [Authentication] (or none) for one request.
//
// # Concurrency
//
// The holder is written by the gatekeeper and read by handlers and services
// on the same request; the atomic pointer keeps those observations coherent
// without a lock. Two concurrent requests never share a Context.
type Context struct {
	authentication atomic.Pointer[Authentication]
}

// NewContext returns an empty (anonymous) security context.
func NewContext() *Context {
	return &Context{}
}

// Authentication returns the bound authentication, or nil when anonymous.
func (securityContext *Context) Authentication() *Authentication {
	return securityContext.authentication.Load()
}

// SetAuthentication binds an authentication. Passing nil clears it.
func (securityContext *Context) SetAuthentication(authentication *Authentication) {
	securityContext.authentication.Store(authentication)
}

// ClearAuthentication detaches the bound identity.
//
// The gatekeeper invokes this at request exit on every path, so a stale
// principal can never be observed by whatever reuses the execution slot.
func (securityContext *Context) ClearAuthentication() {
	securityContext.authentication.Store(nil)
}

// IsAuthenticated reports whether the context holds an authentication.
func (securityContext *Context) IsAuthenticated() bool {
	return securityContext.authentication.Load() != nil
}

// # Context Plumbing

// WithContext returns a request context with the security carrier attached.
func WithContext(ctx context.Context, securityContext *Context) context.Context {
	return context.WithValue(ctx, ctxkey.KeySecurityContext, securityContext)
}

// GetContext returns the security carrier bound to the calling execution.
//
// When none was explicitly attached it returns a fresh empty context —
// never nil, and never an implicitly authenticated one.
func GetContext(ctx context.Context) *Context {
	if securityContext, ok := ctx.Value(ctxkey.KeySecurityContext).(*Context); ok && securityContext != nil {
		return securityContext
	}
	return NewContext()
}

// CurrentUser resolves the authenticated account from the request context.
func CurrentUser(ctx context.Context) (*user.User, bool) {
	authentication := GetContext(ctx).Authentication()
	if authentication == nil {
		return nil, false
	}
	return authentication.Detail().User(), true
}
