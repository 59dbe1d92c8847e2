// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/security"
	"github.com/inkwell-dev/inkwell/internal/platform/validate"
	"github.com/inkwell-dev/inkwell/internal/users/user"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
CurrentUser extracts the authenticated account from the request's security context.

Returns nil if the request is not authenticated.
*/
func CurrentUser(request *http.Request) *user.User {
	account, _ := security.CurrentUser(request.Context())
	return account
}

/*
RequiredUser ensures the request is authenticated and returns the account.

Returns:
  - *user.User: The authenticated account
  - error: apperr.NotAuthenticated if the request is anonymous
*/
func RequiredUser(request *http.Request) (*user.User, error) {
	account, found := security.CurrentUser(request.Context())
	if !found {
		return nil, apperr.NotAuthenticated("You are not logged in")
	}
	return account, nil
}
