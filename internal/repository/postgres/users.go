package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/core/port"
	"github.com/arklim/contact-platform/internal/repository"
)

const usersTable = "users"

var userColumns = []string{"username", "password", "name", "token"}

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewUserRepository(exec pgExecutor) *UserRepository {
	return &UserRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	if tx == nil {
		return r
	}
	return &UserRepository{exec: tx, builder: r.builder}
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	var tokenValue any
	if user.Token != nil && *user.Token != "" {
		tokenValue = *user.Token
	}

	stmt, args, err := r.builder.Insert(usersTable).
		Columns(userColumns...).
		Values(user.Username, user.PasswordHash, user.Name, tokenValue).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByUsername retrieves a user by its primary key.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	stmt, args, err := r.builder.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	return r.scanUser(r.exec.QueryRow(ctx, stmt, args...))
}

// GetByToken resolves an opaque session token to its user.
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	stmt, args, err := r.builder.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user by token sql: %w", err)
	}

	return r.scanUser(r.exec.QueryRow(ctx, stmt, args...))
}

// CountByUsername returns how many users hold the exact username.
func (r *UserRepository) CountByUsername(ctx context.Context, username string) (int, error) {
	stmt, args, err := r.builder.Select("COUNT(*)").
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count users sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("scan users count: %w", err)
	}

	return int(count), nil
}

// Update persists the mutable profile fields (name and password hash).
func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	stmt, args, err := r.builder.Update(usersTable).
		Set("name", user.Name).
		Set("password", user.PasswordHash).
		Where(squirrel.Eq{"username": user.Username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateToken sets or clears the user's current session token.
func (r *UserRepository) UpdateToken(ctx context.Context, username string, token *string) error {
	var tokenValue any
	if token != nil && *token != "" {
		tokenValue = *token
	}

	stmt, args, err := r.builder.Update(usersTable).
		Set("token", tokenValue).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update token sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user  domain.User
		token sql.NullString
	)

	if err := row.Scan(&user.Username, &user.PasswordHash, &user.Name, &token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if token.Valid {
		val := token.String
		user.Token = &val
	}

	return &user, nil
}

var _ port.UserRepository = (*UserRepository)(nil)
