package adminuser

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/whalechillz/mas-win-sub025/pkg/dbmetrics"
	"github.com/whalechillz/mas-win-sub025/pkg/psqlbuilder"
)

var (
	// ErrUserNotFound is returned when no admin matches the login
	ErrUserNotFound = errors.New("adminuser.repository: user not found")

	ErrBuildQuery = errors.New("adminuser.repository: failed to build query")
	ErrScanRow    = errors.New("adminuser.repository: failed to scan row")
)

// User is an admin account
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates the admin user repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmail looks up an admin by case-insensitive email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "name", "password_hash", "role").
		From("admin_users").
		Where(squirrel.Eq{"lower(email)": strings.ToLower(strings.TrimSpace(email))}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var u User
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan user: %w", ErrScanRow, err)
	}

	return &u, nil
}
