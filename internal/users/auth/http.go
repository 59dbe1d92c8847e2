// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwell-dev/inkwell/internal/platform/request"
	"github.com/inkwell-dev/inkwell/internal/platform/respond"
	"github.com/inkwell-dev/inkwell/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the admin authentication HTTP endpoints.
//
// # Scope
//
// This layer is strictly responsible for transport concerns (status codes,
// URL parameters, JSON payloads). All decisions live in [Service].
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] with the admin authentication endpoints.
//
// # Endpoints
//   - POST /login                  : Authenticates and returns a token pair.
//   - POST /login/precheck         : Reports whether the account needs MFA.
//   - POST /refresh/{refreshtoken} : Rotates a session.
//   - POST /logout                 : Revokes the calling session.
//   - POST /password/code          : Emails a password reset code.
//   - POST /password/reset         : Redeems a reset code.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/login/precheck", handler.loginPreCheck)
	router.Post("/refresh/{refreshtoken}", handler.refresh)
	router.Post("/logout", handler.logout)
	router.Post("/password/code", handler.sendResetCode)
	router.Post("/password/reset", handler.resetPassword)

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	AuthCode string `json:"auth_code,omitempty"`
}

type sendResetCodeRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type resetPasswordRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// # Handlers

/*
login establishes a new admin session.

POST /api/admin/login

Request:
  - Body: loginRequest (Username, Password, optional AuthCode)

Response:
  - 200: AuthToken: Fresh token pair
  - 400: CREDENTIAL_MISMATCH, MFA or expired-account failures
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username).
		Required("password", input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Authenticate(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
		AuthCode: input.AuthCode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, token)
}

/*
loginPreCheck validates credentials and reports whether MFA is required.

POST /api/admin/login/precheck
*/
func (handler *Handler) loginPreCheck(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username).
		Required("password", input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.LoginPreCheck(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
refresh rotates the session identified by the refresh token in the path.

POST /api/admin/refresh/{refreshtoken}
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := requestutil.Param(request, "refreshtoken")
	if refreshToken == "" {
		respond.Error(writer, request, validate.RequiredError("refreshtoken", "Refresh token is required"))
		return
	}

	token, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, token)
}

/*
logout revokes the calling user's session.

POST /api/admin/logout
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.Logout(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
sendResetCode emails a short-lived password reset code.

POST /api/admin/password/code
*/
func (handler *Handler) sendResetCode(writer http.ResponseWriter, request *http.Request) {
	var input sendResetCodeRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username).
		Required("email", input.Email).
		Email("email", input.Email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.SendResetCode(request.Context(), SendResetCodeInput{
		Username: input.Username,
		Email:    input.Email,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
resetPassword redeems a reset code for a new password.

POST /api/admin/password/reset
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("code", input.Code).
		Required("password", input.Password).
		MinLen("password", input.Password, 8)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), ResetPasswordInput{
		Username: input.Username,
		Email:    input.Email,
		Code:     input.Code,
		Password: input.Password,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
