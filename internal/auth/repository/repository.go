package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kalkyle/platform/apperr"
)

const userNotFoundMessage = "Bruker ikke funnet"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a user by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `
		SELECT id, email, password_hash, name, company, role, created_at
		FROM users
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// GetByEmail retrieves a user by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	query := `
		SELECT id, email, password_hash, name, company, role, created_at
		FROM users
		WHERE email = $1`

	return r.scanOne(ctx, query, email)
}

// EmailExists reports whether a user with the given email exists.
func (r *Repo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new user and returns the stored row.
func (r *Repo) Create(ctx context.Context, params CreateParams) (User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, name, company, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, password_hash, name, company, role, created_at`

	var u User
	var createdAt time.Time

	err := r.pool.QueryRow(ctx, query,
		uuid.New(), params.Email, params.PasswordHash, params.Name, params.Company, params.Role,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Company, &u.Role, &createdAt)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	u.CreatedAt = createdAt.Format(time.RFC3339)
	return u, nil
}

func (r *Repo) scanOne(ctx context.Context, query string, arg interface{}) (User, error) {
	var u User
	var createdAt time.Time

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Company, &u.Role, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user: %w", err)
	}

	u.CreatedAt = createdAt.Format(time.RFC3339)
	return u, nil
}
