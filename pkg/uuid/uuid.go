// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package uuid provides the identifier generators used across the platform.

Two distinct flavors are exposed:

  - New: time-ordered UUIDv7 strings for request correlation IDs.
  - Opaque: dashless random UUIDv4 strings used as session token material.

Opaque values carry no embedded claims or timestamps. Their only meaning is
as cache lookup keys, which is exactly what makes them revocable.
*/
package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUID: " + err.Error())
	}

	// Convert the UUID to a string
	return id.String()
}

// Opaque generates a random UUIDv4 with the dashes stripped.
//
// The result is a 32-character lowercase hex string suitable for use as an
// opaque bearer token.
func Opaque() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
