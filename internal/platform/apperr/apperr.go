// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package apperr defines the centralized error handling framework for Inkwell.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: Dedicated constructors for every authentication failure kind.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Inkwell API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional echoed data payload for diagnostics.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "CREDENTIAL_MISMATCH").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Data is optional context echoed back to the caller for diagnostics
	// (e.g. the offending refresh token). Never placed in Message.
	Data any `json:"data,omitempty"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithData attaches an echoed data payload and returns the error for chaining.
func (e *AppError) WithData(data any) *AppError {
	e.Data = data
	return e
}

// # Authentication Taxonomy (4xx)

// Unauthenticated creates a 401 [AppError] for requests with no usable token.
func Unauthenticated(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHENTICATED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenExpired creates a 401 [AppError] for an unknown or elapsed token.
func TokenExpired(msg string) *AppError {
	return &AppError{
		Code:       "TOKEN_EXPIRED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// RefreshTokenInvalid creates a 400 [AppError] for an unusable refresh token.
func RefreshTokenInvalid(msg string) *AppError {
	return &AppError{
		Code:       "REFRESH_TOKEN_INVALID",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// AlreadyAuthenticated creates a 400 [AppError] for a login attempt from an
// execution that already carries an authenticated principal.
func AlreadyAuthenticated(msg string) *AppError {
	return &AppError{
		Code:       "ALREADY_AUTHENTICATED",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotAuthenticated creates a 400 [AppError] for session operations that
// require an established identity (e.g. logout without a session).
func NotAuthenticated(msg string) *AppError {
	return &AppError{
		Code:       "NOT_AUTHENTICATED",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// CredentialMismatch creates a 400 [AppError] covering both unknown-user and
// wrong-password, deliberately indistinguishable to prevent enumeration.
func CredentialMismatch(msg string) *AppError {
	return &AppError{
		Code:       "CREDENTIAL_MISMATCH",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ExpiredAccount creates a 400 [AppError] for a principal past its expiry.
func ExpiredAccount(msg string) *AppError {
	return &AppError{
		Code:       "EXPIRED_ACCOUNT",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingMFACode creates a 400 [AppError] when MFA is required but no code
// was supplied.
func MissingMFACode(msg string) *AppError {
	return &AppError{
		Code:       "MISSING_MFA_CODE",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidMFACode creates a 400 [AppError] for a code that failed verification.
func InvalidMFACode(msg string) *AppError {
	return &AppError{
		Code:       "INVALID_MFA_CODE",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidResetCode creates a 400 [AppError] for a missing or mismatched
// password-reset code.
func InvalidResetCode(msg string) *AppError {
	return &AppError{
		Code:       "INVALID_RESET_CODE",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ResetCodeAlreadyIssued creates a 400 [AppError] rate-limiting reset codes
// to one outstanding code at a time.
func ResetCodeAlreadyIssued(msg string) *AppError {
	return &AppError{
		Code:       "RESET_CODE_ALREADY_ISSUED",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MailDisabled creates a 400 [AppError] for flows that need outbound email
// on a deployment where SMTP is not configured.
func MailDisabled(msg string) *AppError {
	return &AppError{
		Code:       "MAIL_DISABLED",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Post") // Returns "Post not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// StorageFailure creates a 500 [AppError] for cache/store I/O failures.
//
// Used when the token index cannot complete a read or a multi-key write;
// the operation is aborted rather than left half-applied.
func StorageFailure(cause error) *AppError {
	return &AppError{
		Code:       "STORAGE_FAILURE",
		Message:    "A storage operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err is an [*AppError] carrying the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
