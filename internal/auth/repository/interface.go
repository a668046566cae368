package repository

import (
	"context"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Company      *string
	Role         string
	CreatedAt    string
}

// CreateParams contains parameters for creating a user.
type CreateParams struct {
	Email        string
	PasswordHash string
	Name         string
	Company      *string
	Role         string
}

// Repository provides persistence for user accounts.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, params CreateParams) (User, error)
}
