// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-dev/inkwell/internal/platform/database/schema"
	"github.com/inkwell-dev/inkwell/internal/platform/dberr"
)

// accountTable aliases the canonical schema definition for readability.
var accountTable = schema.UserAccount

// # Postgres Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID retrieves an account record by its numeric primary key.

Parameters:
  - ctx: context.Context
  - id: int

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, accountTable.ColumnList(), accountTable.Table, accountTable.ID)
	return repository.queryOne(ctx, query, id)
}

/*
FindByUsername retrieves an account record by its unique username.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, accountTable.ColumnList(), accountTable.Table, accountTable.Username)
	return repository.queryOne(ctx, query, username)
}

/*
FindByEmail retrieves an account record by its unique email address.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, accountTable.ColumnList(), accountTable.Table, accountTable.Email)
	return repository.queryOne(ctx, query, email)
}

/*
FindFirst retrieves the earliest-created account in the system.

Description: Backs the no-authentication convenience mode, which treats the
first registered account as the operator.

Parameters:
  - ctx: context.Context

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound when the system has no account yet
*/
func (repository *PostgresRepository) FindFirst(ctx context.Context) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC LIMIT 1`, accountTable.ColumnList(), accountTable.Table, accountTable.ID)
	return repository.queryOne(ctx, query)
}

/*
UpdatePassword replaces only the account's password hash.

Parameters:
  - ctx: context.Context
  - userID: int
  - newHash: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) UpdatePassword(ctx context.Context, userID int, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		accountTable.Table, accountTable.Password, accountTable.UpdatedAt, accountTable.ID)

	if _, err := repository.pool.Exec(ctx, query, newHash, time.Now(), userID); err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

// queryOne runs a single-row account query and maps storage errors into
// domain-friendly ones.
func (repository *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*User, error) {
	account := &User{}

	err := repository.pool.QueryRow(ctx, query, args...).Scan(
		&account.ID,
		&account.Username,
		&account.Nickname,
		&account.Email,
		&account.PasswordHash,
		&account.MFAType,
		&account.MFAKey,
		&account.Avatar,
		&account.Description,
		&account.ExpireTime,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "user_lookup")
	}

	return account, nil
}
