// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/validate"
)

/*
TestValidator_PassingChain verifies that a fully valid chain yields no error.
*/
func TestValidator_PassingChain(t *testing.T) {
	v := &validate.Validator{}
	err := v.Required("username", "alice").
		MinLen("username", "alice", 3).
		Required("email", "alice@example.com").
		Email("email", "alice@example.com").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_CollectsFieldErrors verifies that every failing rule is
reported, not just the first.
*/
func TestValidator_CollectsFieldErrors(t *testing.T) {
	v := &validate.Validator{}
	err := v.Required("username", "  ").
		Email("email", "not-an-email").
		MinLen("password", "ab", 8).
		Err()

	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 3)
}

/*
TestValidator_Custom verifies the escape hatch for domain-specific rules.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	err := v.Custom("code", len("12345") != 6, "Must be a 6-digit code").Err()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "code", appError.Details[0].Field)
}

/*
TestIsEmail covers the email-shaped identifier check used by the login flow.
*/
func TestIsEmail(t *testing.T) {
	assert.True(t, validate.IsEmail("admin@example.com"))
	assert.False(t, validate.IsEmail("admin"))
	assert.False(t, validate.IsEmail(""))
}
