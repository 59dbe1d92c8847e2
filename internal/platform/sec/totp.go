// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Time-based one-time password parameters (RFC 6238).
//
// SHA-1, 6 digits and a 30-second period match the defaults of every
// mainstream authenticator app, so they are fixed rather than configurable.
const (
	totpDigits      = 6
	totpPeriod      = 30 * time.Second
	totpSkewSteps   = 1
	totpSecretBytes = 20
)

// GenerateTOTPSecret creates a random secret and its base32 encoding.
//
// The base32 form (no padding) is what authenticator apps consume.
func GenerateTOTPSecret() (string, error) {
	raw := make([]byte, totpSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate TOTP secret: %w", err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw), nil
}

// TOTPProvisionURI builds the otpauth:// URI that authenticator apps scan.
func TOTPProvisionURI(secretBase32, issuer, account string) string {
	label := url.PathEscape(issuer + ":" + account)

	values := url.Values{}
	values.Set("secret", secretBase32)
	values.Set("issuer", issuer)
	values.Set("period", "30")
	values.Set("digits", "6")
	values.Set("algorithm", "SHA1")

	return "otpauth://totp/" + label + "?" + values.Encode()
}

/*
VerifyTOTPCode checks a submitted one-time code against the account secret.

The check accepts one time-step of clock skew in either direction and uses a
constant-time comparison so that timing does not leak code digits.

Parameters:
  - secretBase32: The account's base32-encoded TOTP secret.
  - code: The 6-digit code submitted by the user.
  - now: The reference time (injectable for tests).

Returns:
  - bool: true if the code matches any window within the skew.
  - error: non-nil only if the secret itself is malformed.
*/
func VerifyTOTPCode(secretBase32, code string, now time.Time) (bool, error) {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) != totpDigits || !isNumeric(trimmed) {
		return false, nil
	}

	secret, err := decodeTOTPSecret(secretBase32)
	if err != nil {
		return false, err
	}

	baseCounter := now.Unix() / int64(totpPeriod.Seconds())
	for step := int64(-totpSkewSteps); step <= totpSkewSteps; step++ {
		counter := baseCounter + step
		if counter < 0 {
			continue
		}
		generated := hotpCode(secret, counter)
		if subtle.ConstantTimeCompare([]byte(generated), []byte(trimmed)) == 1 {
			return true, nil
		}
	}

	return false, nil
}

// decodeTOTPSecret accepts both padded and unpadded base32 secrets.
func decodeTOTPSecret(secretBase32 string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimSpace(secretBase32))
	if normalized == "" {
		return nil, errors.New("sec: empty TOTP secret")
	}

	secret, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(normalized, "="))
	if err != nil {
		return nil, fmt.Errorf("sec: malformed TOTP secret: %w", err)
	}
	return secret, nil
}

// hotpCode computes a single HOTP value (RFC 4226 dynamic truncation).
func hotpCode(secret []byte, counter int64) string {
	var message [8]byte
	binary.BigEndian.PutUint64(message[:], uint64(counter))

	mac := hmac.New(sha1.New, secret)
	_, _ = mac.Write(message[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	truncated := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	return fmt.Sprintf("%06d", truncated%1000000)
}

// isNumeric reports whether the string contains only ASCII digits.
func isNumeric(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
