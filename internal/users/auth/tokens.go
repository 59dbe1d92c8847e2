// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package auth

import (
	"strconv"

	"github.com/inkwell-dev/inkwell/internal/platform/constants"
)

// AuthToken is the transport-ready session token pair returned by login
// and refresh operations.
//
// ExpiredIn is the access token lifetime in seconds; the refresh token
// lifetime is intentionally not exposed to clients.
type AuthToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiredIn    int    `json:"expired_in"`
}

// # Session Index Keys
//
// Each live session occupies four cache entries forming a bidirectional
// mapping. The forward keys (per user) let a new login displace the old
// session; the reverse keys (per token) serve per-request resolution.

// accessTokenKeyForUser maps a user id to its current access token.
func accessTokenKeyForUser(userID int) string {
	return constants.CachePrefixAccessTokenByUser + strconv.Itoa(userID)
}

// refreshTokenKeyForUser maps a user id to its current refresh token.
func refreshTokenKeyForUser(userID int) string {
	return constants.CachePrefixRefreshTokenByUser + strconv.Itoa(userID)
}

// userKeyForAccessToken maps an access token back to its user id.
func userKeyForAccessToken(accessToken string) string {
	return constants.CachePrefixUserByAccessToken + accessToken
}

// userKeyForRefreshToken maps a refresh token back to its user id.
func userKeyForRefreshToken(refreshToken string) string {
	return constants.CachePrefixUserByRefreshToken + refreshToken
}
