package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
	"lightbnb/src/infra/db"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository implements ports.UserRepository using pgx.
type UserRepository struct {
	postgres
}

func NewUserRepository(pg *db.Postgres, log *slog.Logger, timeout time.Duration) *UserRepository {
	return &UserRepository{postgres: newPostgres(pg, log, "user_repo", timeout)}
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
		SELECT id, name, email, password
		FROM users
		WHERE email = $1
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u domain.User
	if err := r.pg.Pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, r.classify(ctx, "get user by email", err)
	}
	return &u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `
		SELECT id, name, email, password
		FROM users
		WHERE id = $1
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u domain.User
	if err := r.pg.Pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, r.classify(ctx, "get user by id", err)
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, nu domain.NewUser) (*domain.User, error) {
	const q = `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u domain.User
	err := r.pg.Pool.QueryRow(ctx, q, nu.Name, nu.Email, nu.Password).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("email already registered")
		}
		return nil, r.classify(ctx, "create user", err)
	}
	return &u, nil
}
