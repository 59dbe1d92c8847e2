// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package auth implements the admin session token lifecycle.

Tokens are opaque random values with no embedded claims; all session state
lives in the expiring cache store. Each live session is a four-entry
bidirectional index (user -> access, user -> refresh, access -> user,
refresh -> user), which makes every token revocable and lets a fresh login
displace the previous session atomically from the client's point of view.

Architecture:

  - Service: Orchestrates login, MFA, rotation, revocation and reset flows.
  - Cache: TTL-bounded token index (memory or Redis backed).
  - Audit: Non-blocking security event trail.

The package never stores plain-text passwords and never tells a caller
whether a failed login was due to an unknown user or a wrong password.
*/
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/audit"
	"github.com/inkwell-dev/inkwell/internal/platform/cache"
	"github.com/inkwell-dev/inkwell/internal/platform/config"
	"github.com/inkwell-dev/inkwell/internal/platform/constants"
	"github.com/inkwell-dev/inkwell/internal/platform/mail"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
	"github.com/inkwell-dev/inkwell/internal/platform/security"
	"github.com/inkwell-dev/inkwell/internal/platform/validate"
	"github.com/inkwell-dev/inkwell/internal/users/user"
	"github.com/inkwell-dev/inkwell/pkg/uuid"
)

// credentialMismatchMessage is deliberately identical for unknown accounts
// and wrong passwords to prevent account enumeration.
const credentialMismatchMessage = "Invalid username or password"

// Service implements the admin authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to credential checks,
// token issuance, or the reset flow must be reviewed by the security team.
type Service struct {
	users      user.Repository
	store      cache.Store
	mailer     mail.Sender
	events     *audit.Publisher
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	users user.Repository,
	store cache.Store,
	mailer mail.Sender,
	events *audit.Publisher,
	cfg *config.Config,
) *Service {
	return &Service{
		users:      users,
		store:      store,
		mailer:     mailer,
		events:     events,
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
		now:        time.Now,
	}
}

// WithClock overrides the service time source. Used by tests to pin the
// MFA verification window.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string // Can be a username or an email address
	Password string
	AuthCode string // One-time MFA code, required when the account has MFA enabled
}

// PreCheckResult tells the client whether the account needs an MFA code
// before the actual login call.
type PreCheckResult struct {
	NeedMFACode bool `json:"need_mfa_code"`
}

/*
LoginPreCheck validates credentials and reports whether MFA is required.

Description: Runs the full credential check (so an attacker learns nothing
extra from this endpoint) but issues no tokens.

Parameters:
  - ctx: context.Context
  - input: LoginInput (AuthCode is ignored here)

Returns:
  - *PreCheckResult: MFA requirement flag
  - error: Same failures as Authenticate, minus MFA code errors
*/
func (service *Service) LoginPreCheck(ctx context.Context, input LoginInput) (*PreCheckResult, error) {
	account, err := service.checkCredentials(ctx, input)
	if err != nil {
		return nil, err
	}
	return &PreCheckResult{NeedMFACode: account.MFAType.UseMFA()}, nil
}

/*
Authenticate validates credentials (and MFA when enabled) and establishes
a new session.

Description: On success the previous session for the account, if any, is
displaced: its tokens stop resolving immediately.

Parameters:
  - ctx: context.Context (must carry the request security context)
  - input: LoginInput

Returns:
  - *AuthToken: Fresh token pair
  - error: CREDENTIAL_MISMATCH, EXPIRED_ACCOUNT, MFA or storage failures
*/
func (service *Service) Authenticate(ctx context.Context, input LoginInput) (*AuthToken, error) {

	// Re-login without logging out first is rejected.
	if security.GetContext(ctx).IsAuthenticated() {
		return nil, apperr.AlreadyAuthenticated("You are already logged in")
	}

	account, err := service.checkCredentials(ctx, input)
	if err != nil {
		return nil, err
	}

	// MFA check happens only after the password was verified, so a stolen
	// password alone never reveals whether MFA is configured.
	if account.MFAType.UseMFA() {
		if input.AuthCode == "" {
			return nil, apperr.MissingMFACode("MFA code is required")
		}
		ok, err := sec.VerifyTOTPCode(account.MFAKey, input.AuthCode, service.now())
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("auth_mfa_verify_failed: %w", err))
		}
		if !ok {
			service.emit(audit.EventLoginFailed, account, "invalid MFA code")
			return nil, apperr.InvalidMFACode("Invalid MFA code")
		}
	}

	// Displace any previous session before installing the new pair, so
	// its tokens stop resolving instead of lingering until TTL.
	if err := service.revokeFor(ctx, account.ID); err != nil {
		return nil, err
	}

	token, err := service.IssueTokenPair(ctx, account)
	if err != nil {
		return nil, err
	}

	// Bind the fresh identity to the current request.
	security.GetContext(ctx).SetAuthentication(security.NewAuthentication(security.NewUserDetail(account)))

	service.emit(audit.EventLoggedIn, account, "")
	return token, nil
}

// checkCredentials resolves the account and verifies the password.
//
// Unknown account and wrong password produce byte-identical errors.
func (service *Service) checkCredentials(ctx context.Context, input LoginInput) (*user.User, error) {
	var account *user.User
	var err error

	// Email-shaped identifiers are looked up by email, everything else by
	// username. No fallback between the two.
	if validate.IsEmail(input.Username) {
		account, err = service.users.FindByEmail(ctx, input.Username)
	} else {
		account, err = service.users.FindByUsername(ctx, input.Username)
	}

	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			service.emitAnonymousFailure(input.Username)
			return nil, apperr.CredentialMismatch(credentialMismatchMessage)
		}
		return nil, err
	}

	if account.Expired(service.now()) {
		return nil, apperr.ExpiredAccount("Account has expired, please contact the administrator")
	}

	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		service.emit(audit.EventLoginFailed, account, "wrong password")
		return nil, apperr.CredentialMismatch(credentialMismatchMessage)
	}

	return account, nil
}

// # Token Issuance & Rotation

/*
IssueTokenPair mints a fresh opaque token pair and installs the four-entry
session index for the account.

Description: The four cache writes are applied in order; if any write
fails, all entries written so far are rolled back so a half-installed
session can never resolve.

Parameters:
  - ctx: context.Context
  - account: *user.User

Returns:
  - *AuthToken: Token pair with access lifetime in seconds
  - error: STORAGE_FAILURE on any index write failure
*/
func (service *Service) IssueTokenPair(ctx context.Context, account *user.User) (*AuthToken, error) {
	accessToken := uuid.Opaque()
	refreshToken := uuid.Opaque()

	type write struct {
		key   string
		value any
		ttl   time.Duration
	}

	writes := []write{
		{accessTokenKeyForUser(account.ID), accessToken, service.accessTTL},
		{refreshTokenKeyForUser(account.ID), refreshToken, service.refreshTTL},
		{userKeyForAccessToken(accessToken), account.ID, service.accessTTL},
		{userKeyForRefreshToken(refreshToken), account.ID, service.refreshTTL},
	}

	for i, w := range writes {
		if err := cache.PutAny(ctx, service.store, w.key, w.value, w.ttl); err != nil {
			// Roll back whatever was already installed.
			for j := 0; j < i; j++ {
				_ = service.store.Delete(ctx, writes[j].key)
			}
			return nil, apperr.StorageFailure(fmt.Errorf("auth_token_index_write_failed: %w", err))
		}
	}

	return &AuthToken{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiredIn:    int(service.accessTTL.Seconds()),
	}, nil
}

/*
Refresh rotates a session: the presented refresh token is exchanged for a
brand-new token pair and the old pair stops resolving.

Parameters:
  - ctx: context.Context
  - refreshToken: string (from the URL path)

Returns:
  - *AuthToken: Fresh token pair
  - error: REFRESH_TOKEN_INVALID (carrying the presented token) or storage failures
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*AuthToken, error) {
	userID, found, err := cache.GetAny[int](ctx, service.store, userKeyForRefreshToken(refreshToken))
	if err != nil {
		return nil, apperr.StorageFailure(err)
	}
	if !found {
		return nil, apperr.RefreshTokenInvalid("Login session expired, please log in again").WithData(refreshToken)
	}

	account, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Drop the old pair before minting the new one so the presented token
	// can never be replayed.
	if err := service.revokeFor(ctx, account.ID); err != nil {
		return nil, err
	}

	// The presented token's reverse mapping is removed by name as well:
	// the forward keys may already point at a newer pair, and revocation
	// through them alone would leave the presented token resolvable.
	if err := service.store.Delete(ctx, userKeyForRefreshToken(refreshToken)); err != nil {
		return nil, apperr.StorageFailure(err)
	}

	return service.IssueTokenPair(ctx, account)
}

// # Revocation

/*
Logout revokes the calling user's session. Idempotent: revoking an account
with no live session succeeds.

Parameters:
  - ctx: context.Context (must carry an authenticated security context)

Returns:
  - error: NOT_AUTHENTICATED when anonymous, or storage failures
*/
func (service *Service) Logout(ctx context.Context) error {
	account, ok := security.CurrentUser(ctx)
	if !ok {
		return apperr.NotAuthenticated("You are not logged in")
	}

	if err := service.revokeFor(ctx, account.ID); err != nil {
		return err
	}

	// The request's identity is detached immediately, not just at request exit.
	security.GetContext(ctx).ClearAuthentication()

	service.emit(audit.EventLoggedOut, account, "")
	return nil
}

// revokeFor removes all four session index entries for a user id.
//
// The forward keys are read first to discover the live tokens; absent
// entries are skipped, making revocation idempotent.
func (service *Service) revokeFor(ctx context.Context, userID int) error {
	accessToken, foundAccess, err := cache.GetAny[string](ctx, service.store, accessTokenKeyForUser(userID))
	if err != nil {
		return apperr.StorageFailure(err)
	}
	refreshToken, foundRefresh, err := cache.GetAny[string](ctx, service.store, refreshTokenKeyForUser(userID))
	if err != nil {
		return apperr.StorageFailure(err)
	}

	if foundAccess {
		if err := service.store.Delete(ctx, userKeyForAccessToken(accessToken)); err != nil {
			return apperr.StorageFailure(err)
		}
	}
	if foundRefresh {
		if err := service.store.Delete(ctx, userKeyForRefreshToken(refreshToken)); err != nil {
			return apperr.StorageFailure(err)
		}
	}
	if err := service.store.Delete(ctx, accessTokenKeyForUser(userID)); err != nil {
		return apperr.StorageFailure(err)
	}
	if err := service.store.Delete(ctx, refreshTokenKeyForUser(userID)); err != nil {
		return apperr.StorageFailure(err)
	}

	return nil
}

// # Password Reset Flow

// SendResetCodeInput identifies the account requesting a reset code.
type SendResetCodeInput struct {
	Username string
	Email    string
}

// ResetPasswordInput redeems a reset code for a new password.
type ResetPasswordInput struct {
	Username string
	Email    string
	Code     string
	Password string
}

/*
SendResetCode generates a short-lived numeric code and emails it to the
account owner.

Description: At most one code is outstanding at a time; while one is live,
further requests are rejected rather than rotating the code.

Parameters:
  - ctx: context.Context
  - input: SendResetCodeInput

Returns:
  - error: CREDENTIAL_MISMATCH, RESET_CODE_ALREADY_ISSUED, MAIL_DISABLED or storage failures
*/
func (service *Service) SendResetCode(ctx context.Context, input SendResetCodeInput) error {
	account, err := service.matchAccount(ctx, input.Username, input.Email)
	if err != nil {
		return err
	}

	_, outstanding, err := service.store.Get(ctx, constants.CacheKeyResetCode)
	if err != nil {
		return apperr.StorageFailure(err)
	}
	if outstanding {
		return apperr.ResetCodeAlreadyIssued("A reset code was already sent, please check your inbox")
	}

	code, err := generateResetCode()
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_reset_code_generation_failed: %w", err))
	}

	if err := service.store.Put(ctx, constants.CacheKeyResetCode, code, constants.ResetCodeTTL); err != nil {
		return apperr.StorageFailure(err)
	}

	body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.",
		code, int(constants.ResetCodeTTL.Minutes()))
	if err := service.mailer.SendText(ctx, account.Email, "Password reset code", body); err != nil {
		// Leave no unusable code behind if delivery failed.
		_ = service.store.Delete(ctx, constants.CacheKeyResetCode)
		return err
	}

	return nil
}

/*
ResetPassword redeems a live reset code and replaces the account password.

Description: On success the code is consumed and every live session of the
account is revoked, so the old credentials cannot linger anywhere.

Parameters:
  - ctx: context.Context
  - input: ResetPasswordInput

Returns:
  - error: INVALID_RESET_CODE, CREDENTIAL_MISMATCH or storage failures
*/
func (service *Service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	account, err := service.matchAccount(ctx, input.Username, input.Email)
	if err != nil {
		return err
	}

	liveCode, found, err := service.store.Get(ctx, constants.CacheKeyResetCode)
	if err != nil {
		return apperr.StorageFailure(err)
	}
	if !found || liveCode != input.Code {
		return apperr.InvalidResetCode("Reset code is invalid or has expired")
	}

	newHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_reset_hash_failed: %w", err))
	}

	if err := service.users.UpdatePassword(ctx, account.ID, newHash); err != nil {
		return err
	}

	// Consume the code and kill any session minted under the old password.
	if err := service.store.Delete(ctx, constants.CacheKeyResetCode); err != nil {
		return apperr.StorageFailure(err)
	}
	if err := service.revokeFor(ctx, account.ID); err != nil {
		return err
	}

	service.emit(audit.EventPasswordReset, account, "")
	return nil
}

// matchAccount resolves an account by username and verifies the email
// belongs to it. Mismatches are generic to prevent probing.
func (service *Service) matchAccount(ctx context.Context, username, email string) (*user.User, error) {
	account, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			return nil, apperr.CredentialMismatch("Username and email do not match")
		}
		return nil, err
	}
	if account.Email != email {
		return nil, apperr.CredentialMismatch("Username and email do not match")
	}
	return account, nil
}

// generateResetCode produces a random numeric code of the configured length.
func generateResetCode() (string, error) {
	buffer := make([]byte, constants.ResetCodeLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}

	digits := make([]byte, constants.ResetCodeLength)
	for i, b := range buffer {
		digits[i] = '0' + b%10
	}
	return string(digits), nil
}

// # Audit Helpers

// emit records a security event for a resolved account.
func (service *Service) emit(eventType string, account *user.User, detail string) {
	service.events.Emit(audit.Event{
		EventType: eventType,
		UserID:    account.ID,
		Username:  account.Username,
		Success:   eventType != audit.EventLoginFailed,
		Detail:    detail,
	})
}

// emitAnonymousFailure records a failed login against an unresolved identifier.
func (service *Service) emitAnonymousFailure(identifier string) {
	service.events.Emit(audit.Event{
		EventType: audit.EventLoginFailed,
		Username:  identifier,
		Success:   false,
		Detail:    "unknown account",
	})
}
