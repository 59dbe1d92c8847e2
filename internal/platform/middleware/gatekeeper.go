// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gobwas/glob"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/cache"
	"github.com/inkwell-dev/inkwell/internal/platform/config"
	"github.com/inkwell-dev/inkwell/internal/platform/constants"
	"github.com/inkwell-dev/inkwell/internal/platform/respond"
	"github.com/inkwell-dev/inkwell/internal/platform/security"
	"github.com/inkwell-dev/inkwell/internal/users/user"
)

// # Authentication Gatekeeper

/*
Gatekeeper authenticates requests to protected admin paths.

Path rules are glob patterns compiled once at construction. A request is
checked only when its path matches a protected pattern AND no excluded
pattern; exclusions always win so login and refresh endpoints stay reachable
from an unauthenticated client.

Token resolution order:

 1. The Admin-Authorization request header.
 2. The admin_token query parameter (for links that cannot set headers).

The resolved principal is bound to a per-request [security.Context] that is
cleared unconditionally when the request finishes.
*/
type Gatekeeper struct {
	authEnabled bool
	protected   []glob.Glob
	excluded    []glob.Glob
	store       cache.Store
	users       user.Repository
	logger      *slog.Logger
}

/*
NewGatekeeper compiles path rules and wires storage dependencies.

Parameters:
  - cfg: Runtime configuration (path globs, auth toggle).
  - store: The token index (access token -> user id).
  - users: Principal lookup repository.
  - logger: Structured logger.

Returns:
  - *Gatekeeper: Ready middleware.
  - error: If any configured glob pattern fails to compile.
*/
func NewGatekeeper(cfg *config.Config, store cache.Store, users user.Repository, logger *slog.Logger) (*Gatekeeper, error) {
	protected, err := compilePatterns(cfg.ProtectedPaths)
	if err != nil {
		return nil, fmt.Errorf("gatekeeper: invalid protected pattern: %w", err)
	}

	excluded, err := compilePatterns(cfg.ExcludedPaths)
	if err != nil {
		return nil, fmt.Errorf("gatekeeper: invalid excluded pattern: %w", err)
	}

	return &Gatekeeper{
		authEnabled: cfg.AuthEnabled,
		protected:   protected,
		excluded:    excluded,
		store:       store,
		users:       users,
		logger:      logger,
	}, nil
}

// compilePatterns compiles glob patterns with '/' as the path separator,
// so a single '*' never crosses a path segment but '**' does.
func compilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		g, err := glob.Compile(trimmed, '/')
		if err != nil {
			return nil, fmt.Errorf("%q: %w", trimmed, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// Handler is the http.Handler decorator applying the gatekeeper rules.
func (gatekeeper *Gatekeeper) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		// 1. Attach a fresh, anonymous security context to every request.
		securityContext := security.NewContext()
		ctx := security.WithContext(request.Context(), securityContext)
		request = request.WithContext(ctx)

		// 2. Always detach identity at request exit, on every path.
		defer securityContext.ClearAuthentication()

		// 3. Unguarded paths pass straight through (still carrying the
		//    anonymous context so downstream code can read it safely).
		if !gatekeeper.Guards(request.URL.Path) {
			next.ServeHTTP(writer, request)
			return
		}

		// 4. Single-operator deployments skip token handling entirely and
		//    act as the first registered account.
		if !gatekeeper.authEnabled {
			gatekeeper.bypass(writer, request, next, securityContext)
			return
		}

		// 5. Resolve the bearer token from header or query string.
		token := ExtractToken(request)
		if token == "" {
			respond.Error(writer, request, apperr.Unauthenticated("Authentication required"))
			return
		}

		// 6. Look the token up in the session index. Absence means the
		//    token expired, was revoked, or never existed; the client
		//    cannot tell which, and should not be able to.
		userID, found, err := cache.GetAny[int](ctx, gatekeeper.store, constants.CachePrefixUserByAccessToken+token)
		if err != nil {
			respond.Error(writer, request, apperr.StorageFailure(err))
			return
		}
		if !found {
			respond.Error(writer, request, apperr.TokenExpired("Token has expired or does not exist"))
			return
		}

		// 7. Load the principal behind the token.
		account, err := gatekeeper.users.FindByID(ctx, userID)
		if err != nil {
			gatekeeper.logger.WarnContext(ctx, "gatekeeper_principal_missing",
				slog.Int("user_id", userID),
			)
			respond.Error(writer, request, apperr.Unauthenticated("Authentication required"))
			return
		}

		// 8. Bind the identity for the remainder of this request.
		securityContext.SetAuthentication(security.NewAuthentication(security.NewUserDetail(account)))

		next.ServeHTTP(writer, request)
	})
}

// Guards reports whether the given request path requires authentication.
// Exclusions win over protections.
func (gatekeeper *Gatekeeper) Guards(path string) bool {
	for _, excluded := range gatekeeper.excluded {
		if excluded.Match(path) {
			return false
		}
	}
	for _, protected := range gatekeeper.protected {
		if protected.Match(path) {
			return true
		}
	}
	return false
}

// bypass authenticates the request as the first registered account.
func (gatekeeper *Gatekeeper) bypass(writer http.ResponseWriter, request *http.Request, next http.Handler, securityContext *security.Context) {
	account, err := gatekeeper.users.FindFirst(request.Context())
	if err != nil {
		// A fresh install with no accounts yet stays anonymous; everything
		// else is a storage fault worth surfacing.
		if apperr.IsCode(err, "NOT_FOUND") {
			next.ServeHTTP(writer, request)
			return
		}
		respond.Error(writer, request, err)
		return
	}

	securityContext.SetAuthentication(security.NewAuthentication(security.NewUserDetail(account)))
	next.ServeHTTP(writer, request)
}

// ExtractToken pulls the access token from the request, header first.
func ExtractToken(request *http.Request) string {
	if token := strings.TrimSpace(request.Header.Get(constants.AdminTokenHeaderName)); token != "" {
		return token
	}
	return strings.TrimSpace(request.URL.Query().Get(constants.AdminTokenQueryName))
}
