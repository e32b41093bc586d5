package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-auth-service/internal/model"
)

const userColumns = `id, name, username, email, password_hash, active, roles, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByIdentifier looks a user up by username or email.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE lower(username) = lower($1) OR lower(email) = lower($1)`,
		strings.TrimSpace(identifier)).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Active, &u.Roles, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%w: find user by identifier: %w", model.ErrStorage, err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Active, &u.Roles, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%w: find user by id: %w", model.ErrStorage, err)
	}
	return u, nil
}
