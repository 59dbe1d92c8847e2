// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package sec_test

import (
	"encoding/base32"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/sec"
)

// rfc6238Secret is the ASCII seed from the RFC 6238 appendix test vectors.
var rfc6238Secret = base32.StdEncoding.WithPadding(base32.NoPadding).
	EncodeToString([]byte("12345678901234567890"))

/*
TestVerifyTOTPCode_RFCVectors checks the SHA-1 vectors from RFC 6238
Appendix B, truncated to 6 digits.
*/
func TestVerifyTOTPCode_RFCVectors(t *testing.T) {
	vectors := []struct {
		unix int64
		code string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}

	for _, vector := range vectors {
		ok, err := sec.VerifyTOTPCode(rfc6238Secret, vector.code, time.Unix(vector.unix, 0))
		require.NoError(t, err)
		assert.True(t, ok, "code %s at t=%d should verify", vector.code, vector.unix)
	}
}

/*
TestVerifyTOTPCode_Skew verifies that a code from the adjacent time-step is
still accepted, but one from two steps away is not.
*/
func TestVerifyTOTPCode_Skew(t *testing.T) {
	// 287082 is valid for t=59 (counter 1).
	ok, err := sec.VerifyTOTPCode(rfc6238Secret, "287082", time.Unix(59+30, 0))
	require.NoError(t, err)
	assert.True(t, ok, "one step of skew should be tolerated")

	ok, err = sec.VerifyTOTPCode(rfc6238Secret, "287082", time.Unix(59+61, 0))
	require.NoError(t, err)
	assert.False(t, ok, "two steps of skew should be rejected")
}

/*
TestVerifyTOTPCode_RejectsMalformedInput verifies input hygiene: wrong
length, non-numeric codes and broken secrets never verify.
*/
func TestVerifyTOTPCode_RejectsMalformedInput(t *testing.T) {
	now := time.Unix(59, 0)

	ok, err := sec.VerifyTOTPCode(rfc6238Secret, "28708", now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = sec.VerifyTOTPCode(rfc6238Secret, "28708a", now)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = sec.VerifyTOTPCode("not!base32", "287082", now)
	assert.Error(t, err)

	_, err = sec.VerifyTOTPCode("", "287082", now)
	assert.Error(t, err)
}

/*
TestGenerateTOTPSecret verifies generated secrets are usable end-to-end.
*/
func TestGenerateTOTPSecret(t *testing.T) {
	secret, err := sec.GenerateTOTPSecret()
	require.NoError(t, err)
	assert.NotEmpty(t, secret)

	// A freshly generated secret should reject an arbitrary code without error.
	_, err = sec.VerifyTOTPCode(secret, "123456", time.Now())
	assert.NoError(t, err)

	uri := sec.TOTPProvisionURI(secret, "Inkwell", "admin@example.com")
	assert.Contains(t, uri, "otpauth://totp/")
	assert.Contains(t, uri, secret)
}
