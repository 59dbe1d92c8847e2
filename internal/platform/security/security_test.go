// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package security_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/security"
	"github.com/inkwell-dev/inkwell/internal/users/user"
)

func authenticationFor(id int, username string) *security.Authentication {
	return security.NewAuthentication(security.NewUserDetail(&user.User{
		ID:       id,
		Username: username,
	}))
}

/*
TestContext_EmptyByDefault verifies that an unattached request context reads
as anonymous, never as implicitly authenticated.
*/
func TestContext_EmptyByDefault(t *testing.T) {
	ctx := context.Background()

	securityContext := security.GetContext(ctx)
	require.NotNil(t, securityContext)
	assert.False(t, securityContext.IsAuthenticated())
	assert.Nil(t, securityContext.Authentication())

	_, found := security.CurrentUser(ctx)
	assert.False(t, found)
}

/*
TestContext_SetAndClear verifies the bind/detach lifecycle within one request.
*/
func TestContext_SetAndClear(t *testing.T) {
	securityContext := security.NewContext()
	ctx := security.WithContext(context.Background(), securityContext)

	// 1. Bind
	securityContext.SetAuthentication(authenticationFor(1, "alice"))
	assert.True(t, security.GetContext(ctx).IsAuthenticated())

	account, found := security.CurrentUser(ctx)
	require.True(t, found)
	assert.Equal(t, "alice", account.Username)

	// 2. Detach
	securityContext.ClearAuthentication()
	assert.False(t, security.GetContext(ctx).IsAuthenticated())
	_, found = security.CurrentUser(ctx)
	assert.False(t, found)
}

/*
TestContext_NoCrossTalk runs two concurrent "requests" — one authenticated,
one anonymous — and verifies each observes only its own identity.
*/
func TestContext_NoCrossTalk(t *testing.T) {
	const rounds = 500

	var wg sync.WaitGroup
	wg.Add(2)

	// Request A: authenticated as alice for every round.
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			securityContext := security.NewContext()
			ctx := security.WithContext(context.Background(), securityContext)
			securityContext.SetAuthentication(authenticationFor(1, "alice"))

			account, found := security.CurrentUser(ctx)
			assert.True(t, found)
			assert.Equal(t, 1, account.ID)

			securityContext.ClearAuthentication()
		}
	}()

	// Request B: anonymous for every round.
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			ctx := security.WithContext(context.Background(), security.NewContext())
			assert.False(t, security.GetContext(ctx).IsAuthenticated())
		}
	}()

	wg.Wait()
}
