package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"

	"edr/internal/core/apperror"
	"edr/internal/domain/auth"
)

const userColumns = `id, email, password_hash, name, role, is_active, is_admin,
	last_login_at, failed_login_attempts, locked_until, created_at, updated_at`

// UserStore is the PostgreSQL auth.UserRepository.
type UserStore struct {
	txm   *TxManager
	table string
}

// NewUserStore creates the PostgreSQL user store.
func NewUserStore(txm *TxManager, prefix string) *UserStore {
	return &UserStore{txm: txm, table: prefix + "users"}
}

// Create implements auth.UserRepository.
func (s *UserStore) Create(ctx context.Context, user *auth.User) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s (id, email, password_hash, name, role, is_active, is_admin,
		                last_login_at, failed_login_attempts, locked_until, created_at, updated_at)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM %s), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`, s.table, s.table)

	querier := s.txm.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql,
		strings.ToLower(user.Email), user.PasswordHash, user.Name, user.Role,
		user.IsActive, user.IsAdmin, user.LastLoginAt, user.FailedLoginAttempts,
		user.LockedUntil, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		if strings.Contains(err.Error(), "unique") {
			return apperror.NewDuplicate("user", "email", user.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID implements auth.UserRepository.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", userColumns, s.table)

	var user auth.User
	querier := s.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &user, sql, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByEmail implements auth.UserRepository.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE lower(email) = lower($1)", userColumns, s.table)

	var user auth.User
	querier := s.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &user, sql, email); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// Update implements auth.UserRepository.
func (s *UserStore) Update(ctx context.Context, user *auth.User) error {
	sql := fmt.Sprintf(`
		UPDATE %s SET
			email = $2, password_hash = $3, name = $4, role = $5,
			is_active = $6, is_admin = $7, last_login_at = $8,
			failed_login_attempts = $9, locked_until = $10, updated_at = now()
		WHERE id = $1`, s.table)

	querier := s.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql,
		user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Name, user.Role,
		user.IsActive, user.IsAdmin, user.LastLoginAt,
		user.FailedLoginAttempts, user.LockedUntil)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID)
	}
	return nil
}

// ExistsByEmail implements auth.UserRepository.
func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE lower(email) = lower($1))", s.table)

	var exists bool
	querier := s.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

var _ auth.UserRepository = (*UserStore)(nil)
