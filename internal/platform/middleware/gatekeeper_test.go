// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/cache"
	"github.com/inkwell-dev/inkwell/internal/platform/config"
	"github.com/inkwell-dev/inkwell/internal/platform/constants"
	"github.com/inkwell-dev/inkwell/internal/platform/dberr"
	"github.com/inkwell-dev/inkwell/internal/platform/middleware"
	"github.com/inkwell-dev/inkwell/internal/platform/security"
	"github.com/inkwell-dev/inkwell/internal/users/user"
)

// fakeUserRepo is an in-memory user.Repository for middleware tests.
type fakeUserRepo struct {
	users map[int]*user.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int) (*user.User, error) {
	if account, ok := r.users[id]; ok {
		return account, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, account := range r.users {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, account := range r.users {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepo) FindFirst(_ context.Context) (*user.User, error) {
	lowest := 0
	for id := range r.users {
		if lowest == 0 || id < lowest {
			lowest = id
		}
	}
	if lowest == 0 {
		return nil, dberr.ErrNotFound
	}
	return r.users[lowest], nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID int, newHash string) error {
	if account, ok := r.users[userID]; ok {
		account.PasswordHash = newHash
		return nil
	}
	return dberr.ErrNotFound
}

func testConfig(authEnabled bool) *config.Config {
	return &config.Config{
		AuthEnabled:    authEnabled,
		ProtectedPaths: []string{"/api/admin/**", "/api/content/comments"},
		ExcludedPaths: []string{
			"/api/admin/login",
			"/api/admin/login/precheck",
			"/api/admin/refresh/*",
			"/api/admin/password/code",
			"/api/admin/password/reset",
			"/api/admin/installations",
			"/api/admin/is_installed",
		},
	}
}

func newGatekeeper(t *testing.T, authEnabled bool, store cache.Store, repo user.Repository) *middleware.Gatekeeper {
	t.Helper()
	gatekeeper, err := middleware.NewGatekeeper(testConfig(authEnabled), store, repo, slog.Default())
	require.NoError(t, err)
	return gatekeeper
}

// echoUserHandler responds 200 with the authenticated username, or
// "anonymous" when no identity is bound.
func echoUserHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if account, ok := security.CurrentUser(request.Context()); ok {
			_, _ = writer.Write([]byte(account.Username))
			return
		}
		_, _ = writer.Write([]byte("anonymous"))
	})
}

/*
TestGatekeeper_Guards verifies the glob routing table: deep admin paths are
guarded, exclusions always win, and unrelated paths pass.
*/
func TestGatekeeper_Guards(t *testing.T) {
	gatekeeper := newGatekeeper(t, true, cache.NewMemoryStore(), &fakeUserRepo{})

	assert.True(t, gatekeeper.Guards("/api/admin/posts"))
	assert.True(t, gatekeeper.Guards("/api/admin/posts/42/comments"))
	assert.True(t, gatekeeper.Guards("/api/content/comments"))

	assert.False(t, gatekeeper.Guards("/api/admin/login"))
	assert.False(t, gatekeeper.Guards("/api/admin/login/precheck"))
	assert.False(t, gatekeeper.Guards("/api/admin/refresh/sometoken"))
	assert.False(t, gatekeeper.Guards("/api/admin/password/code"))
	assert.False(t, gatekeeper.Guards("/api/admin/is_installed"))

	assert.False(t, gatekeeper.Guards("/api/content/posts"))
	assert.False(t, gatekeeper.Guards("/healthz"))
}

/*
TestGatekeeper_MissingToken verifies that a guarded path without any token
is rejected with 401.
*/
func TestGatekeeper_MissingToken(t *testing.T) {
	gatekeeper := newGatekeeper(t, true, cache.NewMemoryStore(), &fakeUserRepo{})
	handler := gatekeeper.Handler(echoUserHandler())

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestGatekeeper_ValidTokenFromHeader verifies the happy path: a live token in
the Admin-Authorization header resolves the principal.
*/
func TestGatekeeper_ValidTokenFromHeader(t *testing.T) {
	store := cache.NewMemoryStore()
	repo := &fakeUserRepo{users: map[int]*user.User{1: {ID: 1, Username: "alice"}}}
	gatekeeper := newGatekeeper(t, true, store, repo)

	err := cache.PutAny(context.Background(), store, constants.CachePrefixUserByAccessToken+"livetoken", 1, time.Minute)
	require.NoError(t, err)

	handler := gatekeeper.Handler(echoUserHandler())
	request := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	request.Header.Set(constants.AdminTokenHeaderName, "livetoken")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "alice", recorder.Body.String())
}

/*
TestGatekeeper_HeaderWinsOverQuery verifies resolution order when both
carriers are present.
*/
func TestGatekeeper_HeaderWinsOverQuery(t *testing.T) {
	store := cache.NewMemoryStore()
	repo := &fakeUserRepo{users: map[int]*user.User{
		1: {ID: 1, Username: "alice"},
		2: {ID: 2, Username: "bob"},
	}}
	gatekeeper := newGatekeeper(t, true, store, repo)

	require.NoError(t, cache.PutAny(context.Background(), store, constants.CachePrefixUserByAccessToken+"headertoken", 1, time.Minute))
	require.NoError(t, cache.PutAny(context.Background(), store, constants.CachePrefixUserByAccessToken+"querytoken", 2, time.Minute))

	handler := gatekeeper.Handler(echoUserHandler())
	request := httptest.NewRequest(http.MethodGet, "/api/admin/posts?"+constants.AdminTokenQueryName+"=querytoken", nil)
	request.Header.Set(constants.AdminTokenHeaderName, "headertoken")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "alice", recorder.Body.String())
}

/*
TestGatekeeper_UnknownToken verifies that an unknown or expired token yields
a TOKEN_EXPIRED response, indistinguishable between the two cases.
*/
func TestGatekeeper_UnknownToken(t *testing.T) {
	gatekeeper := newGatekeeper(t, true, cache.NewMemoryStore(), &fakeUserRepo{})
	handler := gatekeeper.Handler(echoUserHandler())

	request := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	request.Header.Set(constants.AdminTokenHeaderName, "nevertoken")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "TOKEN_EXPIRED")
}

/*
TestGatekeeper_ExcludedPathStaysAnonymous verifies that excluded paths pass
through without token handling but still carry an anonymous context.
*/
func TestGatekeeper_ExcludedPathStaysAnonymous(t *testing.T) {
	gatekeeper := newGatekeeper(t, true, cache.NewMemoryStore(), &fakeUserRepo{})
	handler := gatekeeper.Handler(echoUserHandler())

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/admin/login", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "anonymous", recorder.Body.String())
}

/*
TestGatekeeper_BypassMode verifies that a deployment with authentication
disabled acts as the first registered account on guarded paths.
*/
func TestGatekeeper_BypassMode(t *testing.T) {
	repo := &fakeUserRepo{users: map[int]*user.User{
		1: {ID: 1, Username: "founder"},
		2: {ID: 2, Username: "second"},
	}}
	gatekeeper := newGatekeeper(t, false, cache.NewMemoryStore(), repo)
	handler := gatekeeper.Handler(echoUserHandler())

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "founder", recorder.Body.String())
}

/*
TestGatekeeper_BypassModeNoUsers verifies a fresh install with no accounts
stays anonymous rather than failing.
*/
func TestGatekeeper_BypassModeNoUsers(t *testing.T) {
	gatekeeper := newGatekeeper(t, false, cache.NewMemoryStore(), &fakeUserRepo{})
	handler := gatekeeper.Handler(echoUserHandler())

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "anonymous", recorder.Body.String())
}

/*
TestGatekeeper_ContextClearedAfterRequest verifies that the identity bound
during a request cannot be observed once the request has finished.
*/
func TestGatekeeper_ContextClearedAfterRequest(t *testing.T) {
	store := cache.NewMemoryStore()
	repo := &fakeUserRepo{users: map[int]*user.User{1: {ID: 1, Username: "alice"}}}
	gatekeeper := newGatekeeper(t, true, store, repo)

	require.NoError(t, cache.PutAny(context.Background(), store, constants.CachePrefixUserByAccessToken+"livetoken", 1, time.Minute))

	var captured *security.Context
	handler := gatekeeper.Handler(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = security.GetContext(request.Context())
		assert.True(t, captured.IsAuthenticated())
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	request.Header.Set(constants.AdminTokenHeaderName, "livetoken")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	require.NotNil(t, captured)
	assert.False(t, captured.IsAuthenticated(), "identity must not outlive the request")
}
